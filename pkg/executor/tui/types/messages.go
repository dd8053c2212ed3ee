package types

// Overlay is a modal drawn centered over the current screen.
type Overlay interface {
	View() string
}

// ToastMsg is a message type for showing toast notifications
type ToastMsg struct {
	Message string
	Details string
	Icon    string
	IsError bool
}
