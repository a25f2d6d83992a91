package projectscmd

import (
	"errors"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// CommandRegistry records handlers so hosts can expose them through a CLI.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes handlers to a dispatcher.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription releases a dispatcher subscription.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures Register.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
	OnOutcome      func(ApplyActionCommand, editor.Outcome)
}

// RegistrationResult lists the constructed handlers and subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe releases every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// Register builds the project handlers over manager and hands them to the
// configured registry and dispatcher. Registration errors are joined.
func Register(manager SessionManager, opts RegistrationOptions) (*RegistrationResult, error) {
	result := &RegistrationResult{
		Handlers:      make([]any, 0, 3),
		Subscriptions: make([]CommandSubscription, 0, 3),
	}
	if manager == nil {
		return result, nil
	}

	logger := commands.CommandLogger(opts.LoggerProvider, "projects")
	var errs error
	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)
		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if opts.Dispatcher != nil {
			sub, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if sub != nil {
				result.Subscriptions = append(result.Subscriptions, sub)
			}
		}
	}

	register(NewApplyActionHandler(manager, logger, opts.OnOutcome))
	register(NewImportTemplateHandler(manager, logger))
	register(NewResetProjectHandler(manager, logger))
	return result, errs
}

// GlobalDispatcher subscribes handlers on the go-command global dispatcher.
type GlobalDispatcher struct{}

// RegisterCommand subscribes the project handlers it recognises.
func (GlobalDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case *ApplyActionHandler:
		return dispatcher.SubscribeCommand(command.Commander[ApplyActionCommand](h)), nil
	case *ImportTemplateHandler:
		return dispatcher.SubscribeCommand(command.Commander[ImportTemplateCommand](h)), nil
	case *ResetProjectHandler:
		return dispatcher.SubscribeCommand(command.Commander[ResetProjectCommand](h)), nil
	}
	return nil, errors.New("projectscmd: unsupported handler type")
}
