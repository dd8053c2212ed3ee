package config

import "sync"

// SectionIDResult is the identifier for the cached result section.
const SectionIDResult = "result"

// ResultSection holds the last rendered rich-text result so the result
// screen can be restored after it is closed or the program restarts.
type ResultSection struct {
	Content string
	mu      sync.RWMutex
}

// NewResultSection creates an empty result section.
func NewResultSection() *ResultSection {
	return &ResultSection{}
}

// ID returns the section identifier.
func (s *ResultSection) ID() string {
	return SectionIDResult
}

// Title returns the section title.
func (s *ResultSection) Title() string {
	return "Last Result"
}

// Data returns the current configuration data.
func (s *ResultSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{"content": s.Content}
}

// SetData updates the section from the provided data.
func (s *ResultSection) SetData(data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, _ := data["content"].(string)
	s.Content = content
	return nil
}

// Validate always passes.
func (s *ResultSection) Validate() error {
	return nil
}

// Reset clears the cached content.
func (s *ResultSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Content = ""
}

// GetContent returns the cached content.
func (s *ResultSection) GetContent() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Content
}

// SetContent replaces the cached content.
func (s *ResultSection) SetContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Content = content
}
