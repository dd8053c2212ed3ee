package types

import "github.com/google/uuid"

// TriggerType defines the kind of user action that starts the request pipeline.
type TriggerType string

const (
	TriggerTypeMenu TriggerType = "menu" // TriggerTypeMenu indicates a menu item was chosen.
	TriggerTypeForm TriggerType = "form" // TriggerTypeForm indicates the intake form was submitted.
)

// Trigger is a discrete user action. Menu triggers carry the chosen item and
// the text around it; form triggers carry nothing here because the submitted
// form travels alongside.
type Trigger struct {
	// Metadata holds optional additional information about the trigger.
	Metadata map[string]interface{}

	// ID uniquely identifies the trigger in logs and results.
	ID string

	// MenuItemID is the chosen menu item. Only set for menu triggers.
	MenuItemID string

	// SelectionText is the text selected when the menu was opened.
	SelectionText string

	// EditableContent is the content of the focused editable field, used
	// when nothing is selected.
	EditableContent string

	// Type indicates the kind of trigger.
	Type TriggerType

	// Editable reports whether the menu was opened on an editable field.
	Editable bool
}

// NewMenuTrigger creates a menu trigger for the given item and selection.
func NewMenuTrigger(menuItemID, selection string) *Trigger {
	return &Trigger{
		ID:            uuid.New().String(),
		Type:          TriggerTypeMenu,
		MenuItemID:    menuItemID,
		SelectionText: selection,
		Metadata:      make(map[string]interface{}),
	}
}

// NewFormTrigger creates a form submission trigger.
func NewFormTrigger() *Trigger {
	return &Trigger{
		ID:       uuid.New().String(),
		Type:     TriggerTypeForm,
		Metadata: make(map[string]interface{}),
	}
}

// WithEditable marks the trigger as opened on an editable field holding content.
func (t *Trigger) WithEditable(content string) *Trigger {
	t.Editable = true
	t.EditableContent = content
	return t
}

// WithMetadata adds metadata to the trigger and returns it for chaining.
func (t *Trigger) WithMetadata(key string, value interface{}) *Trigger {
	if t.Metadata == nil {
		t.Metadata = make(map[string]interface{})
	}
	t.Metadata[key] = value
	return t
}

// IsMenu returns true if this is a menu trigger.
func (t *Trigger) IsMenu() bool {
	return t.Type == TriggerTypeMenu
}

// IsForm returns true if this is a form trigger.
func (t *Trigger) IsForm() bool {
	return t.Type == TriggerTypeForm
}
