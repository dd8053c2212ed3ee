package types

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	SalmonPink  = lipgloss.Color("#FFB3BA") // Soft pastel salmon pink - primary accent
	CoralPink   = lipgloss.Color("#FFCCCB") // Lighter coral accent - secondary
	MintGreen   = lipgloss.Color("#A8E6CF") // Soft mint green - success/accept states
	MutedGray   = lipgloss.Color("#6B7280") // Muted gray - secondary text
	BrightWhite = lipgloss.Color("#F9FAFB") // Bright white - primary text
	PaletteBg   = lipgloss.Color("#374151") // Selected row background
	ErrorRed    = lipgloss.Color("203")     // Failures and error toasts
)
