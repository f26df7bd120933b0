package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Sets maps a set name to its ordered cards. This is the whole persisted
// schema: one JSON object, set names as keys, card arrays as values.
type Sets map[string][]Card

// LoadError reports a store file that exists but could not be read or
// decoded. Non-fatal: callers display it and continue with an empty store.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load flashcard sets from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed write of the store file.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save flashcard sets to %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Store persists flashcard sets as a single JSON file. Single-user local
// storage: no locking, last writer wins.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads every set from disk. A missing file is not an error and yields
// an empty map. A malformed file also yields an empty map, plus a *LoadError
// for the UI to surface.
func (s *Store) Load() (Sets, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Sets{}, nil
		}
		return Sets{}, &LoadError{Path: s.path, Err: err}
	}
	var sets Sets
	if err := json.Unmarshal(data, &sets); err != nil {
		return Sets{}, &LoadError{Path: s.path, Err: err}
	}
	if sets == nil {
		sets = Sets{}
	}
	return sets, nil
}

// Save overwrites the store file with the given sets. The write goes to a
// temp file in the same directory first and is renamed into place, so a
// crash mid-write cannot leave a half-written store behind.
func (s *Store) Save(sets Sets) error {
	data, err := json.MarshalIndent(sets, "", "    ")
	if err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &SaveError{Path: s.path, Err: err}
		}
	}
	tmp, err := os.CreateTemp(dir, ".flashcards-*.json")
	if err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &SaveError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &SaveError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &SaveError{Path: s.path, Err: err}
	}
	return nil
}

// Clear deletes the store file. Deleting an already-absent file succeeds.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return &SaveError{Path: s.path, Err: err}
	}
	return nil
}
