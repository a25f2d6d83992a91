package projectscmd

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// ApplyActionHandler routes editor actions through the session manager.
type ApplyActionHandler struct {
	inner *commands.Handler[ApplyActionCommand]
}

// NewApplyActionHandler builds the handler. onOutcome, when set, receives
// the outcome of every accepted dispatch.
func NewApplyActionHandler(manager SessionManager, logger interfaces.Logger, onOutcome func(ApplyActionCommand, editor.Outcome), opts ...commands.HandlerOption[ApplyActionCommand]) *ApplyActionHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg ApplyActionCommand) error {
		session, err := manager.Open(ctx, msg.ProjectID)
		if err != nil {
			return err
		}
		outcome, err := session.Dispatch(ctx, msg.Action)
		if err != nil {
			return err
		}
		if onOutcome != nil {
			onOutcome(msg, outcome)
		}
		if msg.Flush {
			return session.Flush(ctx)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ApplyActionCommand]{
		commands.WithLogger[ApplyActionCommand](logger),
		commands.WithOperation[ApplyActionCommand]("projects.apply_action"),
		commands.WithMessageFields(func(msg ApplyActionCommand) map[string]any {
			fields := projectFields(msg.ProjectID)
			if msg.Action != nil {
				fields[logging.FieldAction] = msg.Action.Type()
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ApplyActionCommand](logger)),
	}
	return &ApplyActionHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ApplyActionCommand].
func (h *ApplyActionHandler) Execute(ctx context.Context, msg ApplyActionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportTemplateHandler seeds a project from a stored template.
type ImportTemplateHandler struct {
	inner *commands.Handler[ImportTemplateCommand]
}

func NewImportTemplateHandler(manager SessionManager, logger interfaces.Logger, opts ...commands.HandlerOption[ImportTemplateCommand]) *ImportTemplateHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg ImportTemplateCommand) error {
		_, err := manager.NewFromTemplate(ctx, msg.ProjectID, msg.TemplateID)
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportTemplateCommand]{
		commands.WithLogger[ImportTemplateCommand](logger),
		commands.WithOperation[ImportTemplateCommand]("projects.import_template"),
		commands.WithMessageFields(func(msg ImportTemplateCommand) map[string]any {
			fields := projectFields(msg.ProjectID)
			if msg.TemplateID != uuid.Nil {
				fields[logging.FieldTemplateID] = msg.TemplateID.String()
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportTemplateCommand](logger)),
	}
	return &ImportTemplateHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

func (h *ImportTemplateHandler) Execute(ctx context.Context, msg ImportTemplateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ResetProjectHandler restores the default document of a project.
type ResetProjectHandler struct {
	inner *commands.Handler[ResetProjectCommand]
}

func NewResetProjectHandler(manager SessionManager, logger interfaces.Logger, opts ...commands.HandlerOption[ResetProjectCommand]) *ResetProjectHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg ResetProjectCommand) error {
		_, err := manager.Reset(ctx, msg.ProjectID)
		return err
	}

	handlerOpts := []commands.HandlerOption[ResetProjectCommand]{
		commands.WithLogger[ResetProjectCommand](logger),
		commands.WithOperation[ResetProjectCommand]("projects.reset"),
		commands.WithMessageFields(func(msg ResetProjectCommand) map[string]any {
			return projectFields(msg.ProjectID)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ResetProjectCommand](logger)),
	}
	return &ResetProjectHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

func (h *ResetProjectHandler) Execute(ctx context.Context, msg ResetProjectCommand) error {
	return h.inner.Execute(ctx, msg)
}

func projectFields(projectID string) map[string]any {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(projectID); trimmed != "" {
		fields[logging.FieldProjectID] = trimmed
	}
	return fields
}
