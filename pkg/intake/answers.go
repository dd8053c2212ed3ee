package intake

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadAnswers decodes a form from a YAML answers file:
//
//	name: Jane
//	age: "40"
//	reason: Kidney Stones
//	answers:
//	  "Do you have pain in the flank or lower back?": {choice: "Yes", details: left side}
//	  "Additional Information": {text: started after a long flight}
//	history:
//	  allergies: Penicillin
func LoadAnswers(r io.Reader) (*Form, error) {
	form := NewForm()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(form); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode intake answers: %w", err)
	}
	if form.Answers == nil {
		form.Answers = make(map[string]Answer)
	}
	if form.History == nil {
		form.History = make(map[string]string)
	}
	return form, nil
}
