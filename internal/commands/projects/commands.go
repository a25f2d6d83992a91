package projectscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/sessions"
)

const (
	applyActionMessageType    = "pagebuilder.projects.apply_action"
	importTemplateMessageType = "pagebuilder.projects.import_template"
	resetProjectMessageType   = "pagebuilder.projects.reset"
)

// SessionManager is the part of sessions.Manager the handlers need.
type SessionManager interface {
	Open(ctx context.Context, projectID string, opts ...sessions.SessionOption) (*sessions.Session, error)
	NewFromTemplate(ctx context.Context, projectID string, templateID uuid.UUID, opts ...sessions.SessionOption) (*sessions.Session, error)
	Reset(ctx context.Context, projectID string, opts ...sessions.SessionOption) (*sessions.Session, error)
}

// ApplyActionCommand dispatches an editor action to a project's session.
type ApplyActionCommand struct {
	ProjectID string        `json:"project_id"`
	Action    editor.Action `json:"-"`
	// Flush waits for the resulting save before returning.
	Flush bool `json:"flush,omitempty"`
}

// Type implements command.Message.
func (ApplyActionCommand) Type() string { return applyActionMessageType }

// Validate checks the project id and the wrapped action.
func (m ApplyActionCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.ProjectID) == "" {
		errs["project_id"] = validation.NewError(applyActionMessageType+".project_id_required", "project_id is required")
	}
	if m.Action == nil {
		errs["action"] = validation.NewError(applyActionMessageType+".action_required", "action is required")
	} else if err := m.Action.Validate(); err != nil {
		errs["action"] = err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportTemplateCommand replaces a project's document with a template.
type ImportTemplateCommand struct {
	ProjectID  string    `json:"project_id"`
	TemplateID uuid.UUID `json:"template_id"`
}

// Type implements command.Message.
func (ImportTemplateCommand) Type() string { return importTemplateMessageType }

func (m ImportTemplateCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.ProjectID) == "" {
		errs["project_id"] = validation.NewError(importTemplateMessageType+".project_id_required", "project_id is required")
	}
	if m.TemplateID == uuid.Nil {
		errs["template_id"] = validation.NewError(importTemplateMessageType+".template_id_required", "template_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResetProjectCommand restores a project's default document.
type ResetProjectCommand struct {
	ProjectID string `json:"project_id"`
}

// Type implements command.Message.
func (ResetProjectCommand) Type() string { return resetProjectMessageType }

func (m ResetProjectCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ProjectID, validation.Required.ErrorObject(
			validation.NewError(resetProjectMessageType+".project_id_required", "project_id is required"),
		)),
	)
}
