package tui

import (
	"github.com/charmbracelet/lipgloss"
	tuitypes "github.com/entrhq/scribby/pkg/executor/tui/types"
)

var (
	salmonPink  = tuitypes.SalmonPink
	coralPink   = tuitypes.CoralPink
	mintGreen   = tuitypes.MintGreen
	mutedGray   = tuitypes.MutedGray
	brightWhite = tuitypes.BrightWhite
	errorRed    = tuitypes.ErrorRed
)

// Common Styles
// These are pre-configured styles for common UI elements.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	selectionStyle = lipgloss.NewStyle().
			Foreground(coralPink).
			Bold(true)

	resultTitleStyle = lipgloss.NewStyle().
				Foreground(mintGreen).
				Bold(true)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mintGreen).
			Padding(0, 1)

	// failureStyle marks failures so they never read as model output.
	failureStyle = lipgloss.NewStyle().
			Foreground(errorRed).
			Bold(true)

	failureBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(errorRed).
			Padding(0, 1)

	formSectionStyle = lipgloss.NewStyle().
				Foreground(salmonPink).
				Underline(true)

	formLabelStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	formFocusStyle = lipgloss.NewStyle().
			Foreground(mintGreen).
			Bold(true)

	// Container Styles
	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(salmonPink).
			Padding(0, 1)
)
