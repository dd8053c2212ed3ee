package intake

import (
	"errors"
	"fmt"
	"strings"
)

// Choice is the answer to a binary question.
type Choice string

const (
	ChoiceUnanswered Choice = ""    // ChoiceUnanswered leaves the question out of the note.
	ChoiceYes        Choice = "Yes" // ChoiceYes includes the question in the note.
	ChoiceNo         Choice = "No"  // ChoiceNo leaves the question out of the note.
)

// ErrMissingField is returned by Validate when a required field is blank.
var ErrMissingField = errors.New("required field is missing")

// ErrUnknownReason is returned by Validate when the reason is not in the catalogue.
var ErrUnknownReason = errors.New("unknown reason for visit")

// Answer holds the response to one reason question.
type Answer struct {
	// Choice is set for binary questions.
	Choice Choice `yaml:"choice"`
	// Details is the optional text next to a binary question.
	Details string `yaml:"details"`
	// Text is set for text questions.
	Text string `yaml:"text"`
}

// Form is a submitted intake form. Answers are keyed by question text and
// History by history field id.
type Form struct {
	Answers map[string]Answer `yaml:"answers"`
	History map[string]string `yaml:"history"`
	Name    string            `yaml:"name"`
	Age     string            `yaml:"age"`
	Reason  string            `yaml:"reason"`
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{
		Answers: make(map[string]Answer),
		History: make(map[string]string),
	}
}

// SetReason changes the reason for visit and drops answers that belonged to
// the previous reason.
func (f *Form) SetReason(reason string) {
	if reason != f.Reason {
		f.Answers = make(map[string]Answer)
	}
	f.Reason = reason
}

// Validate performs presence checks on the fixed fields.
func (f *Form) Validate(c *Catalog) error {
	for _, field := range []struct{ label, value string }{
		{"Name", f.Name},
		{"Age", f.Age},
		{"Reason for Visit", f.Reason},
	} {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s: %w", field.label, ErrMissingField)
		}
	}
	if _, ok := c.Reason(f.Reason); !ok {
		return fmt.Errorf("%q: %w", f.Reason, ErrUnknownReason)
	}
	return nil
}

// Compose renders the form as the free text sent to the model.
//
// Binary questions answered Yes come first, then non-empty text answers,
// both in catalogue order, then non-empty history fields. Anything else is
// left out.
func (f *Form) Compose(c *Catalog) string {
	var description strings.Builder

	reason, _ := c.Reason(f.Reason)

	for _, q := range reason.Questions {
		if q.Type != QuestionBinary {
			continue
		}
		ans := f.Answers[q.Text]
		if ans.Choice != ChoiceYes {
			continue
		}
		description.WriteString(q.Text)
		description.WriteString(": Yes")
		if details := strings.TrimSpace(ans.Details); details != "" && q.Details {
			description.WriteString(", ")
			description.WriteString(details)
		}
		description.WriteString("\n")
	}

	for _, q := range reason.Questions {
		if q.Type != QuestionText {
			continue
		}
		if value := strings.TrimSpace(f.Answers[q.Text].Text); value != "" {
			fmt.Fprintf(&description, "%s: %s\n", q.Text, value)
		}
	}

	for _, h := range c.History {
		if value := strings.TrimSpace(f.History[h.ID]); value != "" {
			fmt.Fprintf(&description, "%s: %s\n", h.Label, value)
		}
	}

	return fmt.Sprintf("Patient Details:\nName: %s\nAge: %s\nReason for Visit: %s\nDetails:\n%s",
		strings.TrimSpace(f.Name),
		strings.TrimSpace(f.Age),
		f.Reason,
		description.String(),
	)
}
