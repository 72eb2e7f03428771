package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound means no document has been saved at the store's path yet.
	ErrNotFound = fmt.Errorf("memory: no saved document: %w", os.ErrNotExist)
	// ErrMalformed means the file exists but is not a valid memory document.
	ErrMalformed = errors.New("memory: malformed document")
)

// Store reads and writes one memory document file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the whole document. A missing file yields ErrNotFound; bad JSON
// or a schema violation yields ErrMalformed.
func (s *Store) Load() (*Document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("memory: read %s: %w", s.path, err)
	}
	if err := validate(b); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, s.path, err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, s.path, err)
	}
	if doc.Reminders == nil {
		doc.Reminders = []Reminder{}
	}
	return &doc, nil
}

// Save writes doc over any existing file.
func (s *Store) Save(doc *Document) error {
	out := doc.Clone()
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("memory: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("memory: write %s: %w", s.path, err)
	}
	return nil
}
