// Package actions maps user-facing actions to model prompts.
//
// Every action and menu item lives in a static table. Lookups never derive an
// action from a menu id by string manipulation.
package actions

// Kind selects how an action builds its prompt.
type Kind int

const (
	// KindTransform applies a short instruction to free text.
	KindTransform Kind = iota
	// KindFullNote turns intake data into a complete SOAP note.
	KindFullNote
)

func (k Kind) String() string {
	switch k {
	case KindTransform:
		return "transform"
	case KindFullNote:
		return "full_note"
	default:
		return "unknown"
	}
}

// Action is a named transformation bound to one prompt template.
type Action struct {
	ID    string
	Label string
	Kind  Kind
}

// The fixed transform actions, in menu order.
var (
	Summarize               = Action{ID: "summarize", Label: "Summarize"}
	GenerateHPI             = Action{ID: "generate-hpi", Label: "Generate HPI"}
	CreateSOAPNote          = Action{ID: "create-soap-note", Label: "Create SOAP Note"}
	HighlightSymptoms       = Action{ID: "highlight-symptoms", Label: "Highlight Symptoms"}
	GenerateMedicationPlan  = Action{ID: "generate-medication-plan", Label: "Generate Medication Plan"}
	InterpretLabResults     = Action{ID: "interpret-lab-results", Label: "Interpret Lab Results"}
	GenerateAssessment      = Action{ID: "generate-assessment", Label: "Generate Assessment"}
	FollowUpRecommendations = Action{ID: "follow-up-recommendations", Label: "Follow-Up Recommendations"}
	FirstLineOfTreatment    = Action{ID: "first-line-of-treatment", Label: "First Line of Treatment"}
)

// FullNote generates a SOAP note from submitted intake data.
var FullNote = Action{ID: "scribby", Label: "Scribby", Kind: KindFullNote}

var transforms = []Action{
	Summarize,
	GenerateHPI,
	CreateSOAPNote,
	HighlightSymptoms,
	GenerateMedicationPlan,
	InterpretLabResults,
	GenerateAssessment,
	FollowUpRecommendations,
	FirstLineOfTreatment,
}

// Transforms returns the transform actions in menu order.
func Transforms() []Action {
	out := make([]Action, len(transforms))
	copy(out, transforms)
	return out
}

// Lookup returns the action with the given id, including FullNote.
func Lookup(id string) (Action, bool) {
	if id == FullNote.ID {
		return FullNote, true
	}
	for _, a := range transforms {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Request is the transient payload built per trigger and consumed once.
type Request struct {
	Action     Action
	SourceText string
}
