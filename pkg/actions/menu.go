package actions

// MenuContext says where a menu item is offered.
type MenuContext string

const (
	ContextAll       MenuContext = "all"       // ContextAll shows the item everywhere.
	ContextSelection MenuContext = "selection" // ContextSelection shows the item only with selected text.
)

// MenuItemIntake is the id of the menu item that opens the intake form.
const MenuItemIntake = "scribby"

// MenuItem binds a menu entry 1:1 to an action.
type MenuItem struct {
	ID      string
	Title   string
	Context MenuContext
	Action  Action
}

// OpensIntake reports whether choosing the item opens the intake form
// instead of sending text directly.
func (m MenuItem) OpensIntake() bool {
	return m.Action.Kind == KindFullNote
}

var menu = []MenuItem{
	{ID: MenuItemIntake, Title: "Scribby - Urology Smart Note Assistant", Context: ContextAll, Action: FullNote},
	{ID: "chatgpt-summarize", Title: "Summarize", Context: ContextSelection, Action: Summarize},
	{ID: "chatgpt-generate-hpi", Title: "Generate HPI", Context: ContextSelection, Action: GenerateHPI},
	{ID: "chatgpt-create-soap-note", Title: "Create SOAP Note", Context: ContextSelection, Action: CreateSOAPNote},
	{ID: "chatgpt-highlight-symptoms", Title: "Highlight Symptoms", Context: ContextSelection, Action: HighlightSymptoms},
	{ID: "chatgpt-generate-medication-plan", Title: "Generate Medication Plan", Context: ContextSelection, Action: GenerateMedicationPlan},
	{ID: "chatgpt-interpret-lab-results", Title: "Interpret Lab Results", Context: ContextSelection, Action: InterpretLabResults},
	{ID: "chatgpt-generate-assessment", Title: "Generate Assessment", Context: ContextSelection, Action: GenerateAssessment},
	{ID: "chatgpt-follow-up-recommendations", Title: "Follow-Up Recommendations", Context: ContextSelection, Action: FollowUpRecommendations},
	{ID: "chatgpt-first-line-of-treatment", Title: "First Line of Treatment", Context: ContextSelection, Action: FirstLineOfTreatment},
}

// Menu returns every menu item in display order.
func Menu() []MenuItem {
	out := make([]MenuItem, len(menu))
	copy(out, menu)
	return out
}

// MenuFor returns the items offered in a context. With a selection every
// item is offered; without one only ContextAll items are.
func MenuFor(hasSelection bool) []MenuItem {
	out := make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		if item.Context == ContextAll || hasSelection {
			out = append(out, item)
		}
	}
	return out
}

// LookupMenuItem returns the menu item with the given id.
func LookupMenuItem(id string) (MenuItem, bool) {
	for _, item := range menu {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
