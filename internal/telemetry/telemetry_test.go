package telemetry_test

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/companion/internal/telemetry"
)

func observeInto(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("COMPANION_ARTIFACTS_DIR", base)
	t.Setenv("COMPANION_OBSERVE_JSON", "1")
	return base
}

// readEvents decodes every line of events.jsonl under base.
func readEvents(t *testing.T, base string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(base, "events.jsonl"))
	require.NoError(t, err)

	var events []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), "line %q", line)
		events = append(events, m)
	}
	return events
}

func assertNoEvents(t *testing.T, base string) {
	t.Helper()
	_, err := os.Stat(filepath.Join(base, "events.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmit_OffByDefault(t *testing.T) {
	base := t.TempDir()
	t.Setenv("COMPANION_ARTIFACTS_DIR", base)
	t.Setenv("COMPANION_OBSERVE_JSON", "0")

	telemetry.Emit("intent_routed", map[string]any{"outcome": "reply"})
	assertNoEvents(t, base)
}

func TestArtifactsDir_Default(t *testing.T) {
	t.Setenv("COMPANION_ARTIFACTS_DIR", "")
	assert.Equal(t, ".companion", telemetry.ArtifactsDir())
}

func TestEmit_AppendsEnvelopedLines(t *testing.T) {
	base := observeInto(t)

	fields := map[string]any{"outcome": "mutate", "reminders": 2}
	telemetry.Emit("intent_routed", fields)
	telemetry.Emit("memory_saved", map[string]any{"reminders": 2})
	telemetry.Emit("memory_loaded", nil)

	events := readEvents(t, base)
	require.Len(t, events, 3)

	first := events[0]
	assert.Equal(t, "intent_routed", first["event"])
	assert.Equal(t, "mutate", first["outcome"])
	assert.Equal(t, float64(2), first["reminders"])
	ts, ok := first["time"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339Nano, ts)
	assert.NoError(t, err)

	assert.Equal(t, "memory_saved", events[1]["event"])
	assert.Len(t, events[2], 2, "nil fields carry only event and time")

	assert.Equal(t, map[string]any{"outcome": "mutate", "reminders": 2}, fields, "caller map untouched")
}

func TestEmit_MarshalErrorWritesNothing(t *testing.T) {
	base := observeInto(t)

	telemetry.Emit("bad", map[string]any{"x": math.NaN()})
	assertNoEvents(t, base)
}
