package config

import (
	"errors"
	"strings"
)

// ErrEmptyCredential is returned when saving a blank API key.
var ErrEmptyCredential = errors.New("API key must not be empty")

// CredentialStore holds the single API key. The key is opaque: it is
// created on first save, overwritten on later saves and never validated.
type CredentialStore struct {
	section  *LLMSection
	manager  *Manager
	override string
}

// APIKey returns the key to authenticate with, or "" when none is set.
func (c *CredentialStore) APIKey() (string, error) {
	if c.override != "" {
		return c.override, nil
	}
	return c.section.GetAPIKey(), nil
}

// SaveAPIKey trims and persists key, replacing any stored key.
func (c *CredentialStore) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyCredential
	}

	previous := c.section.GetAPIKey()
	c.section.SetAPIKey(key)
	if err := c.manager.SaveAll(); err != nil {
		c.section.SetAPIKey(previous)
		return err
	}
	return nil
}

// ResultCache holds the last rendered result.
type ResultCache struct {
	section *ResultSection
	manager *Manager
}

// Load returns the cached content, or "" when nothing is cached.
func (c *ResultCache) Load() (string, error) {
	return c.section.GetContent(), nil
}

// Save replaces the cached content and persists it.
func (c *ResultCache) Save(content string) error {
	previous := c.section.GetContent()
	c.section.SetContent(content)
	if err := c.manager.SaveAll(); err != nil {
		c.section.SetContent(previous)
		return err
	}
	return nil
}

// Clear empties the cache.
func (c *ResultCache) Clear() error {
	if c.section.GetContent() == "" {
		return nil
	}
	return c.Save("")
}
