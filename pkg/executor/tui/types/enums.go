package types

// OverlayMode represents the current overlay state
type OverlayMode int

const (
	// OverlayModeNone indicates no overlay is active
	OverlayModeNone OverlayMode = iota
	// OverlayModeMenu shows the action menu
	OverlayModeMenu
	// OverlayModeKeyPrompt shows the API key prompt
	OverlayModeKeyPrompt
)

// Screen is the main view below any overlay.
type Screen int

const (
	// ScreenEditor shows the note editor
	ScreenEditor Screen = iota
	// ScreenForm shows the intake form
	ScreenForm
	// ScreenLoading shows the spinner while a request is in flight
	ScreenLoading
	// ScreenResult shows the last result or failure
	ScreenResult
	// ScreenResultEdit shows the result as editable markdown
	ScreenResultEdit
)

func (s Screen) String() string {
	switch s {
	case ScreenEditor:
		return "editor"
	case ScreenForm:
		return "form"
	case ScreenLoading:
		return "loading"
	case ScreenResult:
		return "result"
	case ScreenResultEdit:
		return "result-edit"
	default:
		return "unknown"
	}
}
