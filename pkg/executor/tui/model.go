package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/entrhq/scribby/pkg/actions"
	"github.com/entrhq/scribby/pkg/executor/tui/overlay"
	tuitypes "github.com/entrhq/scribby/pkg/executor/tui/types"
	"github.com/entrhq/scribby/pkg/intake"
	"github.com/entrhq/scribby/pkg/logging"
	"github.com/entrhq/scribby/pkg/render"
	"github.com/entrhq/scribby/pkg/types"
)

// dispatcher is the part of pipeline.Dispatcher the TUI drives.
type dispatcher interface {
	HandleMenu(ctx context.Context, trigger *types.Trigger) types.Result
	HandleForm(ctx context.Context, form *intake.Form) types.Result
	SaveCredential(key string) error
	Catalog() *intake.Catalog
}

// model represents the state of the TUI application.
type model struct {
	// Bubble Tea components
	editor       textarea.Model
	resultEditor textarea.Model
	result       viewport.Model
	spinner      spinner.Model

	// Pipeline integration
	ctx        context.Context
	dispatcher dispatcher
	surface    *render.Surface
	logger     *logging.Logger
	copyText   func(content string) (string, error)
	cancel     context.CancelFunc // cancels the request in flight

	// UI state
	overlay   *overlayState
	menu      *overlay.ActionMenu
	keyPrompt *overlay.KeyPrompt
	form      *intakeForm
	toast     *toastNotification
	screen    tuitypes.Screen

	// Editor selection is line-wise from mark to the cursor line; -1 means none.
	mark int

	// Result state
	loadingLabel string
	failure      *types.Result

	restoreOnStart bool

	// Window dimensions
	width  int
	height int
	ready  bool
}

// Messages sent by programPresenter from the dispatcher goroutine.
type (
	promptCredentialMsg struct{}
	openFormMsg         struct{}
	loadingMsg          struct{ action actions.Action }
	hideLoadingMsg      struct{}
	resultMsg           struct{ result types.Result }
)

// restoreMsg reopens the cached result.
type restoreMsg struct{}

// dispatchDoneMsg is returned by the command that ran the dispatcher.
type dispatchDoneMsg struct {
	result types.Result
}

// toastExpiredMsg clears the toast it was scheduled for.
type toastExpiredMsg struct {
	until time.Time
}

// toastNotification represents a temporary notification message
type toastNotification struct {
	active    bool
	message   string
	icon      string
	isError   bool
	showUntil time.Time
}

func newModel(ctx context.Context, d dispatcher, surface *render.Surface, logger *logging.Logger) *model {
	editor := textarea.New()
	editor.Placeholder = "Type or paste clinical notes here..."
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.Focus()

	resultEditor := textarea.New()
	resultEditor.ShowLineNumbers = false
	resultEditor.CharLimit = 0

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = headerStyle

	return &model{
		editor:       editor,
		resultEditor: resultEditor,
		result:       viewport.New(80, 20),
		spinner:      s,
		ctx:          ctx,
		dispatcher:   d,
		surface:      surface,
		logger:       logger,
		copyText:     render.CopyText,
		overlay:      newOverlayState(),
		menu:         overlay.NewActionMenu(),
		toast:        &toastNotification{},
		screen:       tuitypes.ScreenEditor,
		mark:         -1,
	}
}
