package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists sectioned key-value data.
type Store interface {
	// Load reads the persisted data, replacing what is held in memory.
	Load() error

	// Save writes the data held in memory.
	Save() error

	// GetSection returns a copy of one section. A missing section is empty.
	GetSection(sectionID string) (map[string]interface{}, error)

	// SetSection replaces one section in memory.
	SetSection(sectionID string, data map[string]interface{}) error
}

// fileFormat is the on-disk JSON layout.
type fileFormat struct {
	Version  string                            `json:"version"`
	Sections map[string]map[string]interface{} `json:"sections"`
}

const fileVersion = "1.0"

// FileStore implements Store using a JSON file. Writes go to a temp file that
// is renamed over the target, so a crash never leaves a half-written file.
type FileStore struct {
	path     string
	sections map[string]map[string]interface{}
	mu       sync.RWMutex
	modified bool
}

// NewFileStore creates a store backed by path and loads it if it exists.
// If path is empty, defaults to SettingsFile under DefaultDir.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, SettingsFile)
	}

	store := &FileStore{
		path:     path,
		sections: make(map[string]map[string]interface{}),
	}

	if err := store.Load(); err != nil {
		return nil, err
	}

	return store, nil
}

// Load reads the file. A missing file yields an empty store.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.sections = make(map[string]map[string]interface{})
			s.modified = false
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.path, err)
	}

	s.sections = f.Sections
	if s.sections == nil {
		s.sections = make(map[string]map[string]interface{})
	}
	s.modified = false
	return nil
}

// Save writes the file atomically with owner-only permissions.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.path, err)
	}

	raw, err := json.MarshalIndent(fileFormat{Version: fileVersion, Sections: s.sections}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.path, err)
	}

	// The settings file holds the API key, so it is never group or world readable.
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0600); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	s.modified = false
	return nil
}

// GetSection returns a copy of one section.
func (s *FileStore) GetSection(sectionID string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySection(s.sections[sectionID]), nil
}

// SetSection replaces one section with a copy of data.
func (s *FileStore) SetSection(sectionID string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[sectionID] = copySection(data)
	s.modified = true
	return nil
}

// IsModified returns true if the store has unsaved changes.
func (s *FileStore) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}

func copySection(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
