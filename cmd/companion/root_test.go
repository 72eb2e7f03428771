package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/companion/internal/provider"
)

// isolate clears the environment Load reads and returns flags pointing the
// command at a throwaway config and memory file.
func isolate(t *testing.T) (args []string, memPath string) {
	t.Helper()
	for _, k := range []string{
		"COMPANION_PROVIDER", "COMPANION_MODEL", "COMPANION_MEMORY_PATH",
		"COMPANION_LOG_LEVEL", "COMPANION_LOG_FORMAT", "COMPANION_MAX_TOKENS",
		"COMPANION_HISTORY_BUDGET", "COMPANION_OBSERVE_JSON",
		"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY",
	} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	memPath = filepath.Join(dir, "memory.json")
	return []string{"--config", filepath.Join(dir, "companion.yaml"), "--memory", memPath}, memPath
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestChat_MissingCredentialIsFatal(t *testing.T) {
	args, _ := isolate(t)

	_, err := execute(t, "", args...)
	require.ErrorIs(t, err, provider.ErrMissingCredential)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestChat_LocalCommandsWithoutNetwork(t *testing.T) {
	args, memPath := isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	stdin := "remind me to take aspirin at 9am\n/save\n/reminders\n/quit\n"
	out, err := execute(t, stdin, append(args, "--no-color")...)
	require.NoError(t, err)

	assert.Contains(t, out, "Okay, I will remind you to take aspirin at 9AM.")
	assert.Contains(t, out, "Memory saved to "+memPath+".")
	assert.Contains(t, out, "Here are your reminders:\n• take aspirin at 9AM")
	assert.FileExists(t, memPath)

	out, err = execute(t, "", append([]string{"reminders"}, args...)...)
	require.NoError(t, err)
	assert.Equal(t, "Here are your reminders:\n• take aspirin at 9AM\n", out)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	args, _ := isolate(t)
	_, err := execute(t, "", append(args, "extra")...)
	require.Error(t, err)
}
