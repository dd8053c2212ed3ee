// Package config persists the API credential and the last result.
//
// Two JSON files live under the scribby home directory: settings.json holds
// the LLM section (the credential) and state.json holds the result cache.
// Open returns both bundled in Settings, which callers pass explicitly to the
// components that need them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// HomeEnv overrides the scribby home directory.
	HomeEnv = "SCRIBBY_HOME"

	// SettingsFile holds the credential and endpoint settings.
	SettingsFile = "settings.json"

	// StateFile holds the result cache.
	StateFile = "state.json"
)

// DefaultDir returns $SCRIBBY_HOME, or ~/.scribby when it is unset.
func DefaultDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".scribby"), nil
}

// Settings is the loaded configuration.
type Settings struct {
	settings *Manager
	state    *Manager
	llm      *LLMSection
	result   *ResultSection
	dir      string
}

// Open loads the settings and state files from dir. An empty dir means
// DefaultDir. Missing files are fine; they are created on first save.
func Open(dir string) (*Settings, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	settingsStore, err := NewFileStore(filepath.Join(dir, SettingsFile))
	if err != nil {
		return nil, err
	}
	stateStore, err := NewFileStore(filepath.Join(dir, StateFile))
	if err != nil {
		return nil, err
	}

	s := &Settings{
		settings: NewManager(settingsStore),
		state:    NewManager(stateStore),
		llm:      NewLLMSection(),
		result:   NewResultSection(),
		dir:      dir,
	}

	if err := s.settings.RegisterSection(s.llm); err != nil {
		return nil, err
	}
	if err := s.state.RegisterSection(s.result); err != nil {
		return nil, err
	}

	if err := s.settings.LoadAll(); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := s.state.LoadAll(); err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	return s, nil
}

// Dir returns the directory the files live in.
func (s *Settings) Dir() string {
	return s.dir
}

// LLM returns the LLM section.
func (s *Settings) LLM() *LLMSection {
	return s.llm
}

// Credentials returns the credential store. A non-empty override (a CLI flag
// or OPENAI_API_KEY) takes precedence over the stored key.
func (s *Settings) Credentials(override string) *CredentialStore {
	return &CredentialStore{section: s.llm, manager: s.settings, override: override}
}

// ResultCache returns the result cache.
func (s *Settings) ResultCache() *ResultCache {
	return &ResultCache{section: s.result, manager: s.state}
}
