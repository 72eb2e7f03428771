package memory_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/companion/memory"
)

func TestStore_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "memory.json")
	st := memory.NewStore(p)

	in := memory.NewDocument()
	in.SetLastLunch("I had soup for lunch")
	in.AddReminder(memory.Reminder{Task: "take aspirin", Time: "9AM"})
	in.AddReminder(memory.Reminder{Task: "call anna", Time: "4PM"})

	require.NoError(t, st.Save(in))

	out, err := memory.NewStore(p).Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStore_SaveEmptyDocument_WritesReminderArray(t *testing.T) {
	p := filepath.Join(t.TempDir(), "memory.json")
	require.NoError(t, memory.NewStore(p).Save(&memory.Document{}))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"reminders": []`)
	assert.NotContains(t, string(b), "lastLunch")

	out, err := memory.NewStore(p).Load()
	require.NoError(t, err)
	assert.Empty(t, out.Reminders)
	_, ok := out.Lunch()
	assert.False(t, ok)
}

func TestStore_SaveOverwrites(t *testing.T) {
	p := filepath.Join(t.TempDir(), "memory.json")
	st := memory.NewStore(p)

	first := memory.NewDocument()
	first.AddReminder(memory.Reminder{Task: "water plants", Time: "8AM"})
	require.NoError(t, st.Save(first))
	require.NoError(t, st.Save(memory.NewDocument()))

	out, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, out.Reminders)
}

func TestStore_SaveCreatesParentDirs(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "dir", "memory.json")
	require.NoError(t, memory.NewStore(p).Save(memory.NewDocument()))
	_, err := os.Stat(p)
	require.NoError(t, err)
}

func TestStore_LoadMissing_ReturnsNotFound(t *testing.T) {
	p := filepath.Join(t.TempDir(), "does-not-exist.json")

	doc, err := memory.NewStore(p).Load()
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, memory.ErrNotFound)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStore_LoadMalformed(t *testing.T) {
	cases := map[string]string{
		"InvalidJSON":       "{oops",
		"MissingReminders":  `{"lastLunch": "soup"}`,
		"RemindersNotArray": `{"reminders": "none"}`,
		"EmptyTask":         `{"reminders": [{"task": "", "time": "9AM"}]}`,
		"LunchNotString":    `{"lastLunch": 3, "reminders": []}`,
		"SpacedTime":        `{"reminders": [{"task": "walk", "time": "9 am"}]}`,
		"WordTime":          `{"reminders": [{"task": "walk", "time": "whenever"}]}`,
		"LowerCaseTime":     `{"reminders": [{"task": "walk", "time": "9am"}]}`,
		"UntrimmedTask":     `{"reminders": [{"task": " walk ", "time": "9AM"}]}`,
		"BlankTask":         `{"reminders": [{"task": "   ", "time": "9AM"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "memory.json")
			require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

			doc, err := memory.NewStore(p).Load()
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, memory.ErrMalformed)
		})
	}
}

func TestStore_LoadAcceptsParsedReminderShapes(t *testing.T) {
	p := filepath.Join(t.TempDir(), "memory.json")
	body := `{"reminders": [
		{"task": "take pills and walk", "time": "9AM"},
		{"task": "call anna", "time": "12PM"},
		{"task": "x", "time": "7"}
	]}`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	doc, err := memory.NewStore(p).Load()
	require.NoError(t, err)
	assert.Len(t, doc.Reminders, 3)
}

func TestStore_LoadNullLunchIsAbsent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "memory.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"lastLunch": null, "reminders": []}`), 0o644))

	doc, err := memory.NewStore(p).Load()
	require.NoError(t, err)
	_, ok := doc.Lunch()
	assert.False(t, ok)
}

func TestStore_LoadToleratesExtraFields(t *testing.T) {
	p := filepath.Join(t.TempDir(), "memory.json")
	body := `{"reminders": [{"task": "walk", "time": "10AM"}], "note": "kept by another tool"}`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	doc, err := memory.NewStore(p).Load()
	require.NoError(t, err)
	assert.Equal(t, []memory.Reminder{{Task: "walk", Time: "10AM"}}, doc.Reminders)
}
