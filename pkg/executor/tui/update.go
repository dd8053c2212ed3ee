package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/scribby/pkg/actions"
	"github.com/entrhq/scribby/pkg/executor/tui/overlay"
	tuitypes "github.com/entrhq/scribby/pkg/executor/tui/types"
	"github.com/entrhq/scribby/pkg/render"
	"github.com/entrhq/scribby/pkg/types"
)

const (
	keyEsc   = "esc"
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"

	toastDuration = 2 * time.Second
)

// Init starts the cursor blink and, when asked, restores the cached result.
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.restoreOnStart {
		cmds = append(cmds, func() tea.Msg { return restoreMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update handles all state updates for the TUI model.
//
// Uses a pointer receiver so overlay and form mutations persist.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case spinner.TickMsg:
		if m.screen != tuitypes.ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case promptCredentialMsg:
		return m.handlePromptCredential()

	case openFormMsg:
		return m.handleOpenForm()

	case loadingMsg:
		return m.handleLoading(msg)

	case hideLoadingMsg:
		return m.handleHideLoading()

	case resultMsg:
		return m.handleResult(msg)

	case dispatchDoneMsg:
		return m.handleDispatchDone(msg)

	case restoreMsg:
		return m.handleRestore()

	case tuitypes.ToastMsg:
		return m, m.showToast(msg.Message, msg.Icon, msg.IsError)

	case toastExpiredMsg:
		if m.toast.showUntil.Equal(msg.until) {
			m.toast.active = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.forward(msg)
}

// forward passes other messages, such as cursor blinks, to the focused component.
func (m *model) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.overlay.isActive() && m.overlay.mode == tuitypes.OverlayModeKeyPrompt:
		cmd = m.keyPrompt.Update(msg)
	case m.screen == tuitypes.ScreenEditor:
		m.editor, cmd = m.editor.Update(msg)
	case m.screen == tuitypes.ScreenForm && m.form != nil:
		cmd = m.form.forward(msg)
	case m.screen == tuitypes.ScreenResultEdit:
		m.resultEditor, cmd = m.resultEditor.Update(msg)
	}
	return cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		m.cancelRequest()
		return m, tea.Quit
	}

	if m.overlay.isActive() {
		switch m.overlay.mode {
		case tuitypes.OverlayModeMenu:
			return m.handleMenuKey(msg)
		case tuitypes.OverlayModeKeyPrompt:
			return m.handleKeyPromptKey(msg)
		}
	}

	switch m.screen {
	case tuitypes.ScreenEditor:
		return m.handleEditorKey(msg)
	case tuitypes.ScreenForm:
		return m.handleFormKey(msg)
	case tuitypes.ScreenLoading:
		if msg.String() == keyEsc {
			m.logger.Infof("request canceled by user")
			m.cancelRequest()
		}
		return m, nil
	case tuitypes.ScreenResult:
		return m.handleResultKey(msg)
	case tuitypes.ScreenResultEdit:
		return m.handleResultEditKey(msg)
	}
	return m, nil
}

func (m *model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+o", "f2":
		m.openMenu()
		return m, nil
	case "ctrl+k":
		return m.handlePromptCredential()
	case "ctrl+r":
		return m.handleRestore()
	case "ctrl+@", "ctrl+ ":
		if m.mark >= 0 {
			m.mark = -1
		} else {
			m.mark = m.editor.Line()
		}
		return m, nil
	case keyEsc:
		m.mark = -1
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// selection returns the marked lines, from the mark to the cursor line.
func (m *model) selection() string {
	if m.mark < 0 {
		return ""
	}
	lines := strings.Split(m.editor.Value(), "\n")
	from, to := m.mark, m.editor.Line()
	if from > to {
		from, to = to, from
	}
	if to >= len(lines) {
		to = len(lines) - 1
	}
	if from > to {
		return ""
	}
	return strings.Join(lines[from:to+1], "\n")
}

func (m *model) openMenu() {
	hasText := strings.TrimSpace(m.selection()) != "" || strings.TrimSpace(m.editor.Value()) != ""
	m.menu.Activate(actions.MenuFor(hasText))
	m.overlay.activate(tuitypes.OverlayModeMenu, m.menu)
}

func (m *model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.menu.Deactivate()
		m.overlay.deactivate()
		return m, nil
	case tea.KeyUp:
		m.menu.SelectPrev()
		return m, nil
	case tea.KeyDown, tea.KeyTab:
		m.menu.SelectNext()
		return m, nil
	case tea.KeyBackspace:
		if filter := []rune(m.menu.Filter()); len(filter) > 0 {
			m.menu.UpdateFilter(string(filter[:len(filter)-1]))
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.menu.UpdateFilter(m.menu.Filter() + string(msg.Runes))
		return m, nil
	case tea.KeyEnter:
	default:
		return m, nil
	}

	item := m.menu.Selected()
	if item == nil {
		return m, nil
	}
	m.menu.Deactivate()
	m.overlay.deactivate()

	trigger := types.NewMenuTrigger(item.ID, m.selection()).WithEditable(m.editor.Value())
	m.logger.Debugf("trigger %s: menu item %s", trigger.ID, item.ID)
	m.mark = -1

	return m, m.dispatch(func(ctx context.Context) types.Result {
		return m.dispatcher.HandleMenu(ctx, trigger)
	})
}

func (m *model) handlePromptCredential() (tea.Model, tea.Cmd) {
	m.menu.Deactivate()
	m.keyPrompt = overlay.NewKeyPrompt()
	m.overlay.activate(tuitypes.OverlayModeKeyPrompt, m.keyPrompt)
	return m, textinput.Blink
}

func (m *model) handleKeyPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.overlay.deactivate()
		return m, nil
	case keyEnter:
		if !m.keyPrompt.CanSave() {
			return m, nil
		}
		if err := m.dispatcher.SaveCredential(m.keyPrompt.Value()); err != nil {
			m.keyPrompt.SetError(err.Error())
			return m, nil
		}
		m.overlay.deactivate()
		return m, m.showToast("API key saved", "✓", false)
	}
	return m, m.keyPrompt.Update(msg)
}

func (m *model) handleOpenForm() (tea.Model, tea.Cmd) {
	m.form = newIntakeForm(m.dispatcher.Catalog())
	m.screen = tuitypes.ScreenForm
	return m, textinput.Blink
}

func (m *model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.screen = tuitypes.ScreenEditor
		return m, nil
	}
	if msg.String() == keyEsc {
		m.form = nil
		m.screen = tuitypes.ScreenEditor
		return m, nil
	}

	cmd, submit := m.form.Update(msg)
	if !submit {
		return m, cmd
	}

	form := m.form.Form()
	return m, m.dispatch(func(ctx context.Context) types.Result {
		return m.dispatcher.HandleForm(ctx, form)
	})
}

// dispatch runs fn off the event loop with a cancelable context.
func (m *model) dispatch(fn func(ctx context.Context) types.Result) tea.Cmd {
	m.cancelRequest()
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	return func() tea.Msg {
		return dispatchDoneMsg{result: fn(ctx)}
	}
}

func (m *model) cancelRequest() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *model) handleDispatchDone(msg dispatchDoneMsg) (tea.Model, tea.Cmd) {
	m.cancelRequest()
	m.logger.Debugf("trigger %s done: kind=%s failure=%s", msg.result.TriggerID, msg.result.Kind, msg.result.Failure)

	if msg.result.Failure == types.FailureInvalidForm && m.form != nil {
		m.form.SetError(msg.result.Display())
	}
	return m, nil
}

func (m *model) handleLoading(msg loadingMsg) (tea.Model, tea.Cmd) {
	m.form = nil
	m.loadingLabel = msg.action.Label
	m.screen = tuitypes.ScreenLoading
	return m, m.spinner.Tick
}

func (m *model) handleHideLoading() (tea.Model, tea.Cmd) {
	if m.screen == tuitypes.ScreenLoading {
		m.screen = tuitypes.ScreenEditor
	}
	m.loadingLabel = ""
	return m, nil
}

func (m *model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	if !msg.result.IsSuccess() {
		failure := msg.result
		m.failure = &failure
		m.result.SetContent(failureStyle.Width(m.result.Width).Render(failure.Display()))
		m.result.GotoTop()
		m.screen = tuitypes.ScreenResult
		return m, nil
	}

	m.failure = nil
	content, err := m.surface.Open(msg.result.Text)
	if err != nil {
		m.logger.Errorf("trigger %s: %v", msg.result.TriggerID, err)
		content = render.FormatHTML(msg.result.Text)
		m.showContent(content)
		return m, m.showToast("Result not saved: "+err.Error(), "!", true)
	}
	m.showContent(content)
	return m, nil
}

func (m *model) handleRestore() (tea.Model, tea.Cmd) {
	content, err := m.surface.Restore()
	if err != nil {
		if errors.Is(err, render.ErrNothingToShow) {
			return m, m.showToast("No saved result", "i", false)
		}
		return m, m.showToast(err.Error(), "!", true)
	}
	m.failure = nil
	m.showContent(content)
	return m, nil
}

// showContent renders result HTML into the result viewport.
func (m *model) showContent(content string) {
	rendered, err := render.Terminal(content, m.result.Width-2)
	if err != nil {
		rendered, _ = render.PlainText(content)
	}
	m.result.SetContent(rendered)
	m.result.GotoTop()
	m.screen = tuitypes.ScreenResult
}

func (m *model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.failure != nil {
		switch msg.String() {
		case keyEsc, keyEnter, "q":
			m.failure = nil
			m.screen = tuitypes.ScreenEditor
		}
		return m, nil
	}

	switch msg.String() {
	case "c":
		if _, err := m.copyText(m.surface.Content()); err != nil {
			return m, m.showToast(err.Error(), "!", true)
		}
		return m, m.showToast("Copied!", "✓", false)
	case "e":
		md, err := render.Markdown(m.surface.Content())
		if err != nil {
			return m, m.showToast(err.Error(), "!", true)
		}
		m.resultEditor.SetValue(md)
		m.screen = tuitypes.ScreenResultEdit
		return m, m.resultEditor.Focus()
	case keyEsc, "q":
		m.surface.Close()
		m.screen = tuitypes.ScreenEditor
		return m, nil
	}

	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)
	return m, cmd
}

func (m *model) handleResultEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		content, err := m.surface.Edit(m.resultEditor.Value())
		if err != nil {
			return m, m.showToast(err.Error(), "!", true)
		}
		m.resultEditor.Blur()
		m.showContent(content)
		return m, m.showToast("Saved", "✓", false)
	case keyEsc:
		m.resultEditor.Blur()
		m.screen = tuitypes.ScreenResult
		return m, nil
	}

	var cmd tea.Cmd
	m.resultEditor, cmd = m.resultEditor.Update(msg)
	return m, cmd
}

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	bodyWidth := max(msg.Width-4, 20)
	bodyHeight := max(msg.Height-8, 5)

	m.editor.SetWidth(bodyWidth)
	m.editor.SetHeight(bodyHeight)
	m.resultEditor.SetWidth(bodyWidth)
	m.resultEditor.SetHeight(bodyHeight)
	m.result.Width = bodyWidth
	m.result.Height = bodyHeight
	m.ready = true

	if m.screen == tuitypes.ScreenResult && m.failure == nil && m.surface.IsOpen() {
		m.showContent(m.surface.Content())
	}
	return m, nil
}

// showToast displays a toast notification and schedules its removal.
func (m *model) showToast(message, icon string, isError bool) tea.Cmd {
	until := time.Now().Add(toastDuration)
	m.toast.active = true
	m.toast.message = message
	m.toast.icon = icon
	m.toast.isError = isError
	m.toast.showUntil = until
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{until: until}
	})
}
