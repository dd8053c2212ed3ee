// Package cli provides the one-shot command-line executor.
//
// Example usage:
//
//	executor := cli.NewExecutor(dispatcher, surface,
//	    cli.WithFormat(cli.FormatMarkdown),
//	    cli.WithCopy(true),
//	)
//
//	if err := executor.RunAction(ctx, "summarize", note); err != nil {
//	    log.Fatal(err)
//	}
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/entrhq/scribby/pkg/actions"
	"github.com/entrhq/scribby/pkg/intake"
	"github.com/entrhq/scribby/pkg/pipeline"
	"github.com/entrhq/scribby/pkg/render"
	"github.com/entrhq/scribby/pkg/types"
)

// Format selects how a result is written to the output.
type Format string

const (
	FormatText     Format = "text"     // FormatText writes plain paragraphs, as Copy Text does.
	FormatMarkdown Format = "markdown" // FormatMarkdown writes markdown with bold section keywords.
	FormatHTML     Format = "html"     // FormatHTML writes the cached rich text as is.
	FormatTerminal Format = "terminal" // FormatTerminal writes styled terminal text.
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatMarkdown, FormatHTML, FormatTerminal:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// ErrIntakeRequired is returned when the full-note action is run without answers.
var ErrIntakeRequired = errors.New("the full-note action needs intake answers")

// FailureError reports a failed result.
type FailureError struct {
	Result types.Result
}

func (e *FailureError) Error() string {
	return e.Result.Display()
}

func (e *FailureError) Unwrap() error {
	return e.Result.Err
}

// Executor runs single requests and writes results to its writers. It is
// the dispatcher's presenter while it exists.
type Executor struct {
	dispatcher *pipeline.Dispatcher
	surface    *render.Surface
	writer     io.Writer
	errWriter  io.Writer
	copyText   func(content string) (string, error)
	format     Format
	width      int
	copy       bool
}

var _ pipeline.Presenter = (*Executor)(nil)

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithWriter sets the result writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithErrWriter sets the status and failure writer (default is os.Stderr).
func WithErrWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.errWriter = w
	}
}

// WithFormat sets the output format (default is FormatText).
func WithFormat(f Format) ExecutorOption {
	return func(e *Executor) {
		e.format = f
	}
}

// WithWidth sets the wrap width for FormatTerminal.
func WithWidth(width int) ExecutorOption {
	return func(e *Executor) {
		e.width = width
	}
}

// WithCopy also puts successful results on the clipboard.
func WithCopy(enabled bool) ExecutorOption {
	return func(e *Executor) {
		e.copy = enabled
	}
}

// NewExecutor creates a CLI executor and installs it as the presenter of d.
func NewExecutor(d *pipeline.Dispatcher, surface *render.Surface, opts ...ExecutorOption) *Executor {
	e := &Executor{
		dispatcher: d,
		surface:    surface,
		writer:     os.Stdout,
		errWriter:  os.Stderr,
		copyText:   render.CopyText,
		format:     FormatText,
		width:      80,
	}

	for _, opt := range opts {
		opt(e)
	}

	d.SetPresenter(e)
	return e
}

// RunAction runs the action with the given id on text.
func (e *Executor) RunAction(ctx context.Context, actionID, text string) error {
	item, ok := menuItemFor(actionID)
	if !ok {
		return fmt.Errorf("unknown action %q (see -list)", actionID)
	}

	result := e.dispatcher.HandleMenu(ctx, types.NewMenuTrigger(item.ID, text))
	return e.outcome(result)
}

// RunIntake reads intake answers from r and runs the full-note action.
func (e *Executor) RunIntake(ctx context.Context, r io.Reader) error {
	form, err := intake.LoadAnswers(r)
	if err != nil {
		return err
	}
	return e.outcome(e.dispatcher.HandleForm(ctx, form))
}

// SetKey stores the API key.
func (e *Executor) SetKey(key string) error {
	if err := e.dispatcher.SaveCredential(key); err != nil {
		return err
	}
	fmt.Fprintln(e.errWriter, "API key saved.")
	return nil
}

// ShowLast writes the cached result.
func (e *Executor) ShowLast() error {
	content, err := e.surface.Restore()
	if err != nil {
		return err
	}
	return e.write(content)
}

// ListActions writes the available action ids and labels.
func (e *Executor) ListActions() {
	for _, item := range actions.Menu() {
		fmt.Fprintf(e.writer, "%-28s %s\n", item.Action.ID, item.Title)
	}
}

func (e *Executor) outcome(result types.Result) error {
	switch {
	case result.IsSuccess():
		return nil
	case result.Kind == types.ResultDeferred:
		return ErrIntakeRequired
	default:
		return &FailureError{Result: result}
	}
}

// PromptCredential tells the user how to provide a key.
func (e *Executor) PromptCredential() {
	fmt.Fprintln(e.errWriter, "API key is not set. Save one with -set-key or export OPENAI_API_KEY.")
}

// OpenIntakeForm tells the user how to provide intake answers.
func (e *Executor) OpenIntakeForm() {
	fmt.Fprintln(e.errWriter, "The intake form is interactive. Pass answers with -intake <answers.yaml>.")
}

// ShowLoading writes a status line.
func (e *Executor) ShowLoading(action actions.Action) {
	fmt.Fprintf(e.errWriter, "%s...\n", action.Label)
}

// HideLoading is a no-op; the status line stays in the scrollback.
func (e *Executor) HideLoading() {}

// ShowResult writes a success to the writer and a failure to the error writer.
func (e *Executor) ShowResult(result types.Result) {
	if !result.IsSuccess() {
		fmt.Fprintf(e.errWriter, "Error: %s\n", result.Display())
		return
	}

	content, err := e.surface.Open(result.Text)
	if err != nil {
		fmt.Fprintf(e.errWriter, "Warning: %v\n", err)
		content = render.FormatHTML(result.Text)
	}
	if err := e.write(content); err != nil {
		fmt.Fprintf(e.errWriter, "Error: %v\n", err)
		return
	}

	if e.copy {
		if _, err := e.copyText(content); err != nil {
			fmt.Fprintf(e.errWriter, "Warning: %v\n", err)
			return
		}
		fmt.Fprintln(e.errWriter, "Copied!")
	}
}

func (e *Executor) write(content string) error {
	var (
		out string
		err error
	)
	switch e.format {
	case FormatHTML:
		out = content
	case FormatMarkdown:
		out, err = render.Markdown(content)
	case FormatTerminal:
		out, err = render.Terminal(content, e.width)
	default:
		out, err = render.PlainText(content)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(e.writer, strings.TrimRight(out, "\n"))
	return err
}

func menuItemFor(actionID string) (actions.MenuItem, bool) {
	for _, item := range actions.Menu() {
		if item.Action.ID == actionID || item.ID == actionID {
			return item, true
		}
	}
	return actions.MenuItem{}, false
}
