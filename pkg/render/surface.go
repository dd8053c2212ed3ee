package render

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNothingToShow is returned when there is neither output nor a cached result.
var ErrNothingToShow = errors.New("no result to show")

// Store is the single slot holding the last rendered result.
type Store interface {
	Load() (string, error)
	Save(content string) error
}

// Surface is the result display. It owns the cached rich text: the first
// display of an output caches its formatted form, edits overwrite the cache
// and later displays restore the cache unchanged.
type Surface struct {
	store   Store
	mu      sync.Mutex
	content string
	open    bool
}

// NewSurface creates a surface backed by store.
func NewSurface(store Store) *Surface {
	return &Surface{store: store}
}

// Open displays output and returns the content shown. Cached content takes
// precedence over output; otherwise output is formatted and cached. An empty
// output only restores the cache.
func (s *Surface) Open(output string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load cached result: %w", err)
	}

	content := cached
	if content == "" {
		if output == "" {
			return "", ErrNothingToShow
		}
		content = FormatHTML(output)
		if err := s.store.Save(content); err != nil {
			return "", fmt.Errorf("failed to cache result: %w", err)
		}
	}

	s.content = content
	s.open = true
	return content, nil
}

// Restore reopens the surface with the cached result.
func (s *Surface) Restore() (string, error) {
	return s.Open("")
}

// Edit replaces the displayed content with edited markdown and caches it.
func (s *Surface) Edit(markdown string) (string, error) {
	content := FromMarkdown(markdown)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(content); err != nil {
		return "", fmt.Errorf("failed to cache edited result: %w", err)
	}
	s.content = content
	s.open = true
	return content, nil
}

// Content returns the displayed content, or "" when closed.
func (s *Surface) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// IsOpen reports whether a result is displayed.
func (s *Surface) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Copy puts the plain text of the displayed content on the clipboard and
// returns it.
func (s *Surface) Copy() (string, error) {
	return CopyText(s.Content())
}

// Close dismisses the surface. The cache is kept so the result can be restored.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = ""
	s.open = false
}
