package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/scribby/pkg/executor/tui/types"
)

// KeyPrompt asks for the API key. Saving is disabled while the input is blank.
type KeyPrompt struct {
	input textinput.Model
	err   string
}

// NewKeyPrompt creates a focused, masked key prompt.
func NewKeyPrompt() *KeyPrompt {
	input := textinput.New()
	input.Placeholder = "sk-..."
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.Width = 40
	input.Focus()
	return &KeyPrompt{input: input}
}

// Update forwards msg to the input.
func (kp *KeyPrompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	kp.input, cmd = kp.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		kp.err = ""
	}
	return cmd
}

// Value returns the trimmed key.
func (kp *KeyPrompt) Value() string {
	return strings.TrimSpace(kp.input.Value())
}

// CanSave reports whether the key is non-blank.
func (kp *KeyPrompt) CanSave() bool {
	return kp.Value() != ""
}

// SetError shows err under the input.
func (kp *KeyPrompt) SetError(err string) {
	kp.err = err
}

// View renders the prompt
func (kp *KeyPrompt) View() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Foreground(types.SalmonPink).Bold(true).Render("Set API Key"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(types.MutedGray).Render("Enter your OpenAI API key."))
	sb.WriteString("\n\n")
	sb.WriteString(kp.input.View())
	sb.WriteString("\n\n")

	button := lipgloss.NewStyle().Padding(0, 2)
	if kp.CanSave() {
		button = button.Background(types.MintGreen).Foreground(lipgloss.Color("0"))
	} else {
		button = button.Background(types.PaletteBg).Foreground(types.MutedGray)
	}
	sb.WriteString(button.Render("Save"))
	sb.WriteString("  ")
	sb.WriteString(lipgloss.NewStyle().Foreground(types.MutedGray).Italic(true).Render("Enter save • Esc cancel"))

	if kp.err != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(types.ErrorRed).Render(kp.err))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(types.SalmonPink).
		Padding(1, 2).
		Render(sb.String())
}
