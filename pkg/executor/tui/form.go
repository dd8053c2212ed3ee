package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/scribby/pkg/intake"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSelect
	fieldBinary
)

// formField is one focusable row of the intake form.
type formField struct {
	input    textinput.Model
	question *intake.Question
	key      string
	label    string
	options  []string
	choice   int
	kind     fieldKind
}

func (f *formField) value() string {
	if f.kind == fieldText {
		return f.input.Value()
	}
	if f.choice < 0 || f.choice >= len(f.options) {
		return ""
	}
	return f.options[f.choice]
}

// detailsActive reports whether the details input of a binary field takes keys.
func (f *formField) detailsActive() bool {
	return f.kind == fieldBinary && f.question.Details && intake.Choice(f.value()) == intake.ChoiceYes
}

// intakeForm is the intake form screen. Reason questions are rebuilt
// whenever the reason for visit changes.
type intakeForm struct {
	catalog   *intake.Catalog
	name      *formField
	age       *formField
	reason    *formField
	questions []*formField
	history   []*formField
	focus     int
	err       string
}

func newIntakeForm(catalog *intake.Catalog) *intakeForm {
	f := &intakeForm{catalog: catalog}

	f.name = newTextField("name", "Name", "Patient name")
	f.age = &formField{kind: fieldSelect, key: "age", label: "Age", options: append([]string{""}, catalog.Ages()...)}
	f.reason = &formField{kind: fieldSelect, key: "reason", label: "Reason for Visit", options: append([]string{""}, catalog.ReasonNames()...)}

	for _, h := range catalog.History {
		f.history = append(f.history, newTextField(h.ID, h.Label, h.Placeholder))
	}

	f.focusField(0)
	return f
}

func newTextField(key, label, placeholder string) *formField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Width = 48
	return &formField{kind: fieldText, key: key, label: label, input: input}
}

func (f *intakeForm) fields() []*formField {
	out := []*formField{f.name, f.age, f.reason}
	out = append(out, f.questions...)
	return append(out, f.history...)
}

func (f *intakeForm) focused() *formField {
	fields := f.fields()
	if f.focus < 0 || f.focus >= len(fields) {
		return nil
	}
	return fields[f.focus]
}

func (f *intakeForm) focusField(i int) tea.Cmd {
	fields := f.fields()
	if len(fields) == 0 {
		return nil
	}
	i = (i + len(fields)) % len(fields)
	for _, field := range fields {
		field.input.Blur()
	}
	f.focus = i
	field := fields[i]
	if field.kind == fieldText || field.detailsActive() {
		return field.input.Focus()
	}
	return nil
}

func (f *intakeForm) rebuildQuestions() {
	f.questions = nil
	reason, ok := f.catalog.Reason(f.reason.value())
	if !ok {
		return
	}
	for i := range reason.Questions {
		q := &reason.Questions[i]
		if q.Type == intake.QuestionBinary {
			input := textinput.New()
			input.Placeholder = "Details"
			input.Width = 32
			f.questions = append(f.questions, &formField{
				kind:     fieldBinary,
				key:      q.Text,
				label:    q.Text,
				question: q,
				options:  []string{string(intake.ChoiceUnanswered), string(intake.ChoiceYes), string(intake.ChoiceNo)},
				input:    input,
			})
			continue
		}
		field := newTextField(q.Text, q.Text, "")
		field.question = q
		f.questions = append(f.questions, field)
	}
}

// cycle moves a select or binary field to the next or previous option.
func (f *intakeForm) cycle(delta int) tea.Cmd {
	field := f.focused()
	if field == nil || field.kind == fieldText || len(field.options) == 0 {
		return nil
	}
	field.choice = (field.choice + delta + len(field.options)) % len(field.options)
	if field == f.reason {
		f.rebuildQuestions()
	}
	return f.focusField(f.focus)
}

// Update handles keys while the form screen is shown. It returns submit when
// the user asks to send the form.
func (f *intakeForm) Update(msg tea.KeyMsg) (cmd tea.Cmd, submit bool) {
	f.err = ""
	field := f.focused()

	switch msg.String() {
	case "tab", "down":
		return f.focusField(f.focus + 1), false
	case "shift+tab", "up":
		return f.focusField(f.focus - 1), false
	case "ctrl+s":
		return nil, true
	case "enter":
		if f.focus == len(f.fields())-1 {
			return nil, true
		}
		return f.focusField(f.focus + 1), false
	}

	if field == nil {
		return nil, false
	}

	if field.kind != fieldText {
		switch msg.String() {
		case "left":
			return f.cycle(-1), false
		case "right", " ":
			if !field.detailsActive() || msg.String() == "right" {
				return f.cycle(1), false
			}
		case "y":
			if field.kind == fieldBinary && !field.detailsActive() {
				field.choice = 1
				return f.focusField(f.focus), false
			}
		case "n":
			if field.kind == fieldBinary && !field.detailsActive() {
				field.choice = 2
				return f.focusField(f.focus), false
			}
		}
		if !field.detailsActive() {
			return nil, false
		}
	}

	field.input, cmd = field.input.Update(msg)
	return cmd, false
}

// forward passes non-key messages such as cursor blinks to the focused input.
func (f *intakeForm) forward(msg tea.Msg) tea.Cmd {
	field := f.focused()
	if field == nil || !field.input.Focused() {
		return nil
	}
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return cmd
}

// Form returns the entered values as an intake form.
func (f *intakeForm) Form() *intake.Form {
	form := intake.NewForm()
	form.Name = f.name.value()
	form.Age = f.age.value()
	form.SetReason(f.reason.value())

	for _, q := range f.questions {
		switch q.kind {
		case fieldBinary:
			ans := intake.Answer{Choice: intake.Choice(q.value())}
			if q.question.Details {
				ans.Details = q.input.Value()
			}
			form.Answers[q.key] = ans
		case fieldText:
			form.Answers[q.key] = intake.Answer{Text: q.input.Value()}
		}
	}
	for _, h := range f.history {
		form.History[h.key] = h.input.Value()
	}
	return form
}

// SetError shows err at the top of the form.
func (f *intakeForm) SetError(err string) {
	f.err = err
}

// View renders the visible window of rows around the focused field.
func (f *intakeForm) View(width, height int) string {
	var lines []string
	focusLine := 0
	section := ""

	for i, field := range f.fields() {
		next := "Patient Information"
		switch {
		case field.question != nil:
			next = f.reason.value()
		case i >= 3+len(f.questions):
			next = "General History"
		}
		if next != section {
			if section != "" {
				lines = append(lines, "")
			}
			lines = append(lines, formSectionStyle.Render(next))
			section = next
		}

		if i == f.focus {
			focusLine = len(lines)
		}
		lines = append(lines, f.renderField(field, i == f.focus))
	}

	visible := height - 4
	if visible < 5 {
		visible = 5
	}
	start := 0
	if focusLine >= visible {
		start = focusLine - visible + 1
	}
	end := min(start+visible, len(lines))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Patient Intake"))
	sb.WriteString("\n")
	if f.err != "" {
		sb.WriteString(failureStyle.Render(f.err))
	} else {
		sb.WriteString(tipsStyle.Render("Tab/↑/↓ move • ←/→ or y/n choose • Ctrl+S submit • Esc cancel"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(lines[start:end], "\n"))

	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

func (f *intakeForm) renderField(field *formField, focused bool) string {
	marker := "  "
	label := formLabelStyle.Render(field.label + ":")
	if focused {
		marker = formFocusStyle.Render("> ")
		label = formFocusStyle.Render(field.label + ":")
	}

	var value string
	switch field.kind {
	case fieldText:
		value = field.input.View()
	case fieldSelect:
		value = renderChoice(field.value(), "Select", focused)
	case fieldBinary:
		value = renderChoice(field.value(), "-", focused)
		if field.detailsActive() {
			value += "  " + field.input.View()
		}
	}

	return fmt.Sprintf("%s%s %s", marker, label, value)
}

func renderChoice(value, empty string, focused bool) string {
	if value == "" {
		value = empty
	}
	if focused {
		return formFocusStyle.Render("‹ " + value + " ›")
	}
	return value
}
