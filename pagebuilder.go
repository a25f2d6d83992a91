package pagebuilder

import (
	"context"

	"github.com/google/uuid"

	projectscmd "github.com/goliatone/go-pagebuilder/internal/commands/projects"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/observability"
	"github.com/goliatone/go-pagebuilder/internal/sessions"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/site"
)

// Site is the persisted document of a project.
type Site = site.Site

// Session edits one project. See sessions.Session.
type Session = sessions.Session

// SessionOption configures a session when it is opened.
type SessionOption = sessions.SessionOption

// Action is an editor event accepted by Session.Dispatch.
type Action = editor.Action

// State is the editor state of a session.
type State = editor.State

// Outcome reports what a dispatched action changed.
type Outcome = editor.Outcome

// TemplateService exports the template catalog contract.
type TemplateService = templates.Service

// Module is the page builder runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the DI container for advanced integrations.
func (m *Module) Container() *di.Container { return m.container }

// Sessions returns the session manager.
func (m *Module) Sessions() *sessions.Manager { return m.container.Sessions() }

// Templates returns the template catalog.
func (m *Module) Templates() TemplateService { return m.container.TemplateService() }

// Metrics returns the collectors, nil when metrics are disabled.
func (m *Module) Metrics() *observability.Metrics { return m.container.Metrics() }

// Open returns the editing session of projectID.
func (m *Module) Open(ctx context.Context, projectID string, opts ...SessionOption) (*Session, error) {
	return m.container.Sessions().Open(ctx, projectID, opts...)
}

// NewFromTemplate replaces the project's document with a template.
func (m *Module) NewFromTemplate(ctx context.Context, projectID string, templateID uuid.UUID, opts ...SessionOption) (*Session, error) {
	return m.container.Sessions().NewFromTemplate(ctx, projectID, templateID, opts...)
}

// Reset replaces the project's document with the default site.
func (m *Module) Reset(ctx context.Context, projectID string, opts ...SessionOption) (*Session, error) {
	return m.container.Sessions().Reset(ctx, projectID, opts...)
}

// Load reads a stored document without opening a session. Missing projects
// yield the default document.
func (m *Module) Load(ctx context.Context, projectID string) (Site, error) {
	return m.container.Bridge().Load(ctx, projectID)
}

// Projects lists stored project ids.
func (m *Module) Projects(ctx context.Context) ([]string, error) {
	return m.container.Sessions().Projects(ctx)
}

// Export serializes the stored document of projectID.
func (m *Module) Export(ctx context.Context, projectID string) ([]byte, error) {
	doc, err := m.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return documents.Serialize(doc)
}

// SeedTemplates loads the configured template seed file.
func (m *Module) SeedTemplates(ctx context.Context) error {
	return m.container.SeedTemplates(ctx)
}

// RegisterCommands exposes the project commands to a registry or
// dispatcher.
func (m *Module) RegisterCommands(opts projectscmd.RegistrationOptions) (*projectscmd.RegistrationResult, error) {
	if opts.LoggerProvider == nil {
		opts.LoggerProvider = m.container.LoggerProvider()
	}
	return projectscmd.Register(m.container.Sessions(), opts)
}

// Close flushes pending saves and releases resources.
func (m *Module) Close(ctx context.Context) error {
	return m.container.Close(ctx)
}
