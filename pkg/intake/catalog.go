// Package intake models the structured patient intake form and turns a
// submitted form into the free text sent with the full-note action.
package intake

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// QuestionType selects how a question is answered.
type QuestionType string

const (
	QuestionBinary QuestionType = "binary" // QuestionBinary is answered Yes or No.
	QuestionText   QuestionType = "text"   // QuestionText is answered with free text.
)

// Question is one reason-specific question.
type Question struct {
	Text string       `yaml:"text"`
	Type QuestionType `yaml:"type"`
	// Details adds a short free-text field next to a binary question.
	Details bool `yaml:"details"`
}

// Reason is a reason for visit with its ordered questions.
type Reason struct {
	Name      string     `yaml:"name"`
	Questions []Question `yaml:"questions"`
}

// HistoryField is a general history entry shown for every reason.
type HistoryField struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
}

// Catalog holds every reason, question and history field the form offers.
type Catalog struct {
	Reasons []Reason       `yaml:"reasons"`
	History []HistoryField `yaml:"history"`
	MinAge  int            `yaml:"min_age"`
	MaxAge  int            `yaml:"max_age"`
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded urology catalogue.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(catalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// ParseCatalog decodes and checks a YAML catalogue.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode intake catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Reasons) == 0 {
		return fmt.Errorf("intake catalog has no reasons")
	}
	if c.MinAge <= 0 || c.MaxAge < c.MinAge {
		return fmt.Errorf("intake catalog has invalid age range %d-%d", c.MinAge, c.MaxAge)
	}
	seen := make(map[string]bool, len(c.Reasons))
	for _, r := range c.Reasons {
		if r.Name == "" {
			return fmt.Errorf("intake catalog has a reason without a name")
		}
		if seen[r.Name] {
			return fmt.Errorf("intake catalog lists reason %q twice", r.Name)
		}
		seen[r.Name] = true
		for _, q := range r.Questions {
			if q.Type != QuestionBinary && q.Type != QuestionText {
				return fmt.Errorf("reason %q: question %q has unknown type %q", r.Name, q.Text, q.Type)
			}
		}
	}
	for _, h := range c.History {
		if h.ID == "" || h.Label == "" {
			return fmt.Errorf("intake catalog has a history field without id or label")
		}
	}
	return nil
}

// Reason returns the reason with the given name.
func (c *Catalog) Reason(name string) (Reason, bool) {
	for _, r := range c.Reasons {
		if r.Name == name {
			return r, true
		}
	}
	return Reason{}, false
}

// ReasonNames returns the reason names in display order.
func (c *Catalog) ReasonNames() []string {
	names := make([]string, 0, len(c.Reasons))
	for _, r := range c.Reasons {
		names = append(names, r.Name)
	}
	return names
}

// Ages returns the selectable ages as strings, lowest first.
func (c *Catalog) Ages() []string {
	ages := make([]string, 0, c.MaxAge-c.MinAge+1)
	for a := c.MinAge; a <= c.MaxAge; a++ {
		ages = append(ages, fmt.Sprintf("%d", a))
	}
	return ages
}
