// Package pipeline carries a trigger from the action menu or the intake form
// through the credential check and the completion call to the presenter.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/scribby/pkg/actions"
	"github.com/entrhq/scribby/pkg/intake"
	"github.com/entrhq/scribby/pkg/logging"
	"github.com/entrhq/scribby/pkg/types"
)

// Credentials reads and stores the API key.
type Credentials interface {
	APIKey() (string, error)
	SaveAPIKey(key string) error
}

// Cache is the single slot holding the last rendered result. The dispatcher
// only empties it; the result surface fills it.
type Cache interface {
	Clear() error
}

// Presenter renders dispatcher state. Implementations must not block: the
// dispatcher calls them inline while a trigger is handled.
type Presenter interface {
	// PromptCredential asks the user for an API key.
	PromptCredential()

	// OpenIntakeForm shows the structured intake form.
	OpenIntakeForm()

	// ShowLoading marks a request for action as in flight.
	ShowLoading(action actions.Action)

	// HideLoading clears the loading state. It is called after every
	// ShowLoading, whatever the outcome.
	HideLoading()

	// ShowResult displays a success or failure.
	ShowResult(result types.Result)
}

// Dispatcher reacts to triggers.
type Dispatcher struct {
	credentials Credentials
	cache       Cache
	sender      Sender
	presenter   Presenter
	catalog     *intake.Catalog
	logger      *logging.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithCatalog sets the intake catalog used to validate and compose forms.
func WithCatalog(c *intake.Catalog) Option {
	return func(d *Dispatcher) {
		d.catalog = c
	}
}

// WithPresenter sets the presenter.
func WithPresenter(p Presenter) Option {
	return func(d *Dispatcher) {
		d.presenter = p
	}
}

// NewDispatcher creates a dispatcher. Without WithCatalog the embedded
// default catalog is used; without WithPresenter state changes are dropped.
func NewDispatcher(credentials Credentials, cache Cache, sender Sender, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		credentials: credentials,
		cache:       cache,
		sender:      sender,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.catalog == nil {
		catalog, err := intake.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("failed to load intake catalog: %w", err)
		}
		d.catalog = catalog
	}
	if d.presenter == nil {
		d.presenter = nopPresenter{}
	}

	return d, nil
}

// SetPresenter replaces the presenter. Executors whose presenter needs the
// dispatcher to exist first use it during setup.
func (d *Dispatcher) SetPresenter(p Presenter) {
	d.presenter = p
}

// Catalog returns the intake catalog.
func (d *Dispatcher) Catalog() *intake.Catalog {
	return d.catalog
}

// HandleMenu handles a menu selection.
//
// The credential is checked before anything else. The intake item opens the
// form and returns a deferred result. A transform sends the selection, or the
// editable field content when nothing is selected.
func (d *Dispatcher) HandleMenu(ctx context.Context, trigger *types.Trigger) types.Result {
	key, ok := d.requireCredential(trigger.ID)
	if !ok {
		return types.Failed(types.FailureMissingCredential, nil).WithTrigger(trigger.ID)
	}

	item, found := actions.LookupMenuItem(trigger.MenuItemID)
	if !found {
		d.logger.Warnf("trigger %s: unknown menu item %q", trigger.ID, trigger.MenuItemID)
		result := types.Failed(types.FailureUnknownAction, fmt.Errorf("menu item %q", trigger.MenuItemID)).WithTrigger(trigger.ID)
		d.presenter.ShowResult(result)
		return result
	}

	if item.OpensIntake() {
		d.logger.Debugf("trigger %s: opening intake form", trigger.ID)
		d.presenter.OpenIntakeForm()
		return types.Deferred().WithTrigger(trigger.ID)
	}

	text := resolveText(trigger)
	if text == "" {
		d.logger.Warnf("trigger %s: no text for %s", trigger.ID, item.Action.ID)
		result := types.Failed(types.FailureNoText, nil).WithTrigger(trigger.ID)
		d.presenter.ShowResult(result)
		return result
	}

	return d.run(ctx, trigger.ID, key, actions.Request{Action: item.Action, SourceText: text})
}

// HandleForm validates and composes a submitted intake form and sends it as a
// full note request. An invalid form is returned without presenter calls so
// the form can report it in place.
func (d *Dispatcher) HandleForm(ctx context.Context, form *intake.Form) types.Result {
	trigger := types.NewFormTrigger()

	if err := form.Validate(d.catalog); err != nil {
		return types.Failed(types.FailureInvalidForm, err).WithTrigger(trigger.ID)
	}

	key, ok := d.requireCredential(trigger.ID)
	if !ok {
		return types.Failed(types.FailureMissingCredential, nil).WithTrigger(trigger.ID)
	}

	note := form.Compose(d.catalog)
	return d.run(ctx, trigger.ID, key, actions.Request{Action: actions.FullNote, SourceText: note})
}

// SaveCredential stores key as the API key.
func (d *Dispatcher) SaveCredential(key string) error {
	if err := d.credentials.SaveAPIKey(key); err != nil {
		d.logger.Errorf("failed to save API key: %v", err)
		return err
	}
	d.logger.Infof("API key saved")
	return nil
}

func (d *Dispatcher) requireCredential(triggerID string) (string, bool) {
	key, err := d.credentials.APIKey()
	if err != nil {
		d.logger.Errorf("trigger %s: failed to read API key: %v", triggerID, err)
	}
	if key == "" {
		d.logger.Infof("trigger %s: no API key, prompting", triggerID)
		d.presenter.PromptCredential()
		return "", false
	}
	return key, true
}

func (d *Dispatcher) run(ctx context.Context, triggerID, key string, req actions.Request) types.Result {
	// The slot belongs to the new request from here on; a stale result
	// must not be restored over it.
	if err := d.cache.Clear(); err != nil {
		d.logger.Warnf("trigger %s: failed to clear result cache: %v", triggerID, err)
	}

	d.presenter.ShowLoading(req.Action)
	result := d.sender.Send(ctx, key, req).WithTrigger(triggerID)
	d.presenter.HideLoading()

	if !result.IsSuccess() {
		d.logger.Warnf("trigger %s: %s failed: %s", triggerID, req.Action.ID, result.Failure)
	}
	d.presenter.ShowResult(result)
	return result
}

// resolveText returns the selection, else the editable content, verbatim.
// Whitespace-only text counts as empty.
func resolveText(trigger *types.Trigger) string {
	if strings.TrimSpace(trigger.SelectionText) != "" {
		return trigger.SelectionText
	}
	if trigger.Editable && strings.TrimSpace(trigger.EditableContent) != "" {
		return trigger.EditableContent
	}
	return ""
}

type nopPresenter struct{}

func (nopPresenter) PromptCredential()          {}
func (nopPresenter) OpenIntakeForm()            {}
func (nopPresenter) ShowLoading(actions.Action) {}
func (nopPresenter) HideLoading()               {}
func (nopPresenter) ShowResult(types.Result)    {}
