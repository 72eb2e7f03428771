// Package telemetry writes structured JSONL events for offline inspection of
// how turns were handled (local intent vs model dispatch, window sizes,
// memory saves).
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const defaultArtifactsDir = ".companion"

// ObserveEnabled reports whether JSONL emission is enabled.
func ObserveEnabled() bool {
	return os.Getenv("COMPANION_OBSERVE_JSON") == "1"
}

// ArtifactsDir is where events.jsonl is written; COMPANION_ARTIFACTS_DIR
// overrides the default ".companion".
func ArtifactsDir() string {
	if d := os.Getenv("COMPANION_ARTIFACTS_DIR"); d != "" {
		return d
	}
	return defaultArtifactsDir
}

// Emit writes a single JSON line to <artifacts>/events.jsonl when
// COMPANION_OBSERVE_JSON=1. It augments fields with RFC3339Nano time and the
// event name.
func Emit(name string, fields map[string]any) {
	if !ObserveEnabled() {
		return
	}

	// Make a shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	dir := ArtifactsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", dir, err)
		return
	}

	path := filepath.Join(dir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
		return
	}
}
