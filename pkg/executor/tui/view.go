package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	tuitypes "github.com/entrhq/scribby/pkg/executor/tui/types"
)

// View renders the entire TUI interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.screen {
	case tuitypes.ScreenForm:
		if m.form != nil {
			body = m.form.View(m.width-4, m.height-4)
		}
	case tuitypes.ScreenLoading:
		body = m.buildLoading()
	case tuitypes.ScreenResult:
		body = m.buildResult()
	case tuitypes.ScreenResultEdit:
		body = inputBoxStyle.Width(m.width - 4).Render(m.resultEditor.View())
	default:
		body = inputBoxStyle.Width(m.width - 4).Render(m.editor.View())
	}

	baseView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.buildHeader(),
		body,
		m.buildBottomBar(),
	)

	return m.applyOverlays(baseView)
}

// buildHeader renders the title and context-sensitive tips
func (m *model) buildHeader() string {
	title := headerStyle.Render(" Scribby") + tipsStyle.Render("  Urology Smart Note Assistant")
	return title + "\n" + tipsStyle.Render("  "+m.tips())
}

func (m *model) tips() string {
	switch m.screen {
	case tuitypes.ScreenLoading:
		return "Esc cancel"
	case tuitypes.ScreenResult:
		if m.failure != nil {
			return "Esc close"
		}
		return "c copy text • e edit • ↑/↓ scroll • Esc close"
	case tuitypes.ScreenResultEdit:
		return "Ctrl+S save • Esc discard"
	case tuitypes.ScreenForm:
		return "Fill in the intake form"
	default:
		return "Ctrl+O actions • Ctrl+Space mark selection • Ctrl+R last result • Ctrl+K API key • Ctrl+C exit"
	}
}

func (m *model) buildLoading() string {
	label := m.loadingLabel
	if label == "" {
		label = "Working"
	}
	msg := fmt.Sprintf("%s %s...", m.spinner.View(), label)
	return lipgloss.Place(m.width, max(m.height-4, 3), lipgloss.Center, lipgloss.Center, headerStyle.Render(msg))
}

func (m *model) buildResult() string {
	if m.failure != nil {
		title := failureStyle.Render("Request failed")
		return failureBoxStyle.Width(m.width - 4).Render(title + "\n\n" + m.result.View())
	}
	title := resultTitleStyle.Render("Scribby")
	return resultBoxStyle.Width(m.width - 4).Render(title + "\n" + m.result.View())
}

// buildBottomBar renders the status bar
func (m *model) buildBottomBar() string {
	left := m.screen.String()
	if m.screen == tuitypes.ScreenEditor && m.mark >= 0 {
		from, to := m.mark, m.editor.Line()
		if from > to {
			from, to = to, from
		}
		left = selectionStyle.Render(fmt.Sprintf("selection: lines %d-%d", from+1, to+1))
	}

	right := fmt.Sprintf("%d chars", len(m.editor.Value()))
	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

// applyOverlays layers all active overlays on top of the base view
func (m *model) applyOverlays(baseView string) string {
	if m.overlay.isActive() {
		baseView = renderOverlay(m.overlay.overlay, m.width, m.height)
	}
	if m.toast.active {
		baseView = renderToastOverlay(baseView, m.renderToast())
	}
	return baseView
}

// renderToast renders a toast notification
func (m *model) renderToast() string {
	borderColor := mintGreen
	if m.toast.isError {
		borderColor = errorRed
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	return boxStyle.Render(fmt.Sprintf("%s %s", m.toast.icon, m.toast.message))
}
