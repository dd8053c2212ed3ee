// Package tui provides the interactive terminal executor: a note editor with
// an action menu, the intake form, the loading spinner and the result screen.
//
// The TUI codebase is split into multiple files:
// - executor.go: Executor and program lifecycle
// - model.go: Core model structure and messages
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - form.go: Intake form screen
// - presenter.go: Bridge from the dispatcher to the event loop
// - styles.go: Styling
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/scribby/pkg/logging"
	"github.com/entrhq/scribby/pkg/pipeline"
	"github.com/entrhq/scribby/pkg/render"
)

// Executor runs the TUI against a dispatcher.
type Executor struct {
	dispatcher  *pipeline.Dispatcher
	surface     *render.Surface
	logger      *logging.Logger
	program     *tea.Program
	initialText string
	restore     bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithInitialText prefills the editor.
func WithInitialText(text string) Option {
	return func(e *Executor) {
		e.initialText = text
	}
}

// WithRestore opens the cached result on start.
func WithRestore() Option {
	return func(e *Executor) {
		e.restore = true
	}
}

// NewExecutor creates a TUI executor. Run installs itself as the
// dispatcher's presenter.
func NewExecutor(d *pipeline.Dispatcher, surface *render.Surface, opts ...Option) *Executor {
	e := &Executor{dispatcher: d, surface: surface}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run starts the TUI and blocks until the user exits or ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	e.logger.Infof("TUI executor starting")

	m := newModel(ctx, e.dispatcher, e.surface, e.logger)
	if e.initialText != "" {
		m.editor.SetValue(e.initialText)
	}
	m.restoreOnStart = e.restore

	e.program = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	e.dispatcher.SetPresenter(&programPresenter{send: e.program.Send})

	if _, err := e.program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	e.logger.Infof("TUI executor stopped")
	return nil
}
