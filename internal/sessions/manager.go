package sessions

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/observability"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/internal/timers"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/site"
)

// Manager opens sessions over a document bridge and owns the shared
// autosaver. At most one session per project is open at a time.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	bridge     *documents.Bridge
	saver      *documents.AutoSaver
	templates  templates.Service
	metrics    *observability.Metrics
	logger     interfaces.Logger
	timersLog  interfaces.Logger
	reducerOps []editor.ReducerOption
	timerOps   []timers.ControllerOption
	debounce   time.Duration
	timeout    time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTemplates enables NewFromTemplate.
func WithTemplates(svc templates.Service) ManagerOption {
	return func(m *Manager) {
		if svc != nil {
			m.templates = svc
		}
	}
}

// WithMetrics records dispatch, save and timer metrics.
func WithMetrics(metrics *observability.Metrics) ManagerOption {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// WithLogger sets the sessions logger.
func WithLogger(logger interfaces.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTimersLogger sets the logger handed to session timers. Sessions use
// their own logger when unset.
func WithTimersLogger(logger interfaces.Logger) ManagerOption {
	return func(m *Manager) {
		m.timersLog = logger
	}
}

// WithReducerOptions forwards options to every session's reducer.
func WithReducerOptions(opts ...editor.ReducerOption) ManagerOption {
	return func(m *Manager) {
		m.reducerOps = append(m.reducerOps, opts...)
	}
}

// WithTimerOptions forwards options to every session's timer controller.
func WithTimerOptions(opts ...timers.ControllerOption) ManagerOption {
	return func(m *Manager) {
		m.timerOps = append(m.timerOps, opts...)
	}
}

// WithPersistence sets the autosave debounce and per-save timeout.
func WithPersistence(debounce, timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.debounce = debounce
		m.timeout = timeout
	}
}

// NewManager builds a manager. A nil bridge stores documents in memory.
func NewManager(bridge *documents.Bridge, opts ...ManagerOption) *Manager {
	if bridge == nil {
		bridge = documents.NewBridge(nil)
	}
	m := &Manager{
		sessions:  make(map[string]*Session),
		bridge:    bridge,
		templates: templates.NewNoOpService(),
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.saver = documents.NewAutoSaver(bridge,
		documents.WithDebounce(m.debounce),
		documents.WithSaveTimeout(m.timeout),
		documents.WithAutoSaverLogger(m.logger),
		documents.WithOnSaved(func(_ string, elapsed time.Duration) {
			m.metrics.RecordSave(nil, elapsed)
		}),
		documents.WithOnError(m.saveFailed),
	)
	return m
}

// Open loads the project's document and returns its session, or the
// already open session for the project. Options only apply to a new
// session; passing any for an open project fails with ErrAlreadyOpen.
func (m *Manager) Open(ctx context.Context, projectID string, opts ...SessionOption) (*Session, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrManagerClosed
	}
	if existing, ok := m.sessions[projectID]; ok {
		if hasOptions(opts) {
			return nil, ErrAlreadyOpen
		}
		return existing, nil
	}

	doc, loadErr := m.bridge.Load(ctx, projectID)
	logger := logging.WithProject(m.logger, projectID)
	if loadErr != nil {
		var failure *documents.LoadError
		if errors.As(loadErr, &failure) {
			m.metrics.RecordLoadFailure(string(failure.Category))
		}
		logger.WithContext(ctx).Warn("session.open.default_document", "error", loadErr)
	}

	session := m.newSession(projectID, doc, logger, opts...)
	session.loadErr = loadErr
	m.sessions[projectID] = session
	return session, nil
}

// NewFromTemplate seeds projectID with a template's document. An open
// session has its document replaced; otherwise the document is stored and
// a session opened on it. Options follow the rules of Open.
func (m *Manager) NewFromTemplate(ctx context.Context, projectID string, templateID uuid.UUID, opts ...SessionOption) (*Session, error) {
	doc, err := m.templates.Instantiate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return m.replace(ctx, projectID, doc, opts...)
}

// Reset replaces the project's document with the default document.
func (m *Manager) Reset(ctx context.Context, projectID string, opts ...SessionOption) (*Session, error) {
	return m.replace(ctx, projectID, site.DefaultSite(), opts...)
}

func (m *Manager) replace(ctx context.Context, projectID string, doc site.Site, opts ...SessionOption) (*Session, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}
	if session, ok := m.Session(projectID); ok {
		if hasOptions(opts) {
			return nil, ErrAlreadyOpen
		}
		if _, err := session.Dispatch(ctx, editor.ReplaceSiteAction{Site: doc}); err != nil {
			return nil, err
		}
		return session, session.Flush(ctx)
	}
	if _, err := m.bridge.Seed(ctx, projectID, doc); err != nil {
		return nil, err
	}
	return m.Open(ctx, projectID, opts...)
}

// Session returns the open session of projectID.
func (m *Manager) Session(projectID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[strings.TrimSpace(projectID)]
	return session, ok
}

// Projects lists stored project ids.
func (m *Manager) Projects(ctx context.Context) ([]string, error) {
	return m.bridge.Projects(ctx)
}

// Close closes every open session and waits for pending saves.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	open := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		open = append(open, session)
	}
	m.mu.Unlock()

	var errs []error
	for _, session := range open {
		if err := session.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.saver.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (m *Manager) newSession(projectID string, doc site.Site, logger interfaces.Logger, opts ...SessionOption) *Session {
	cfg := sessionConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	timerOps := append([]timers.ControllerOption{}, m.timerOps...)
	timerLogger := logger
	if m.timersLog != nil {
		timerLogger = logging.WithProject(m.timersLog, projectID)
	}
	timerOps = append(timerOps, timers.WithControllerLogger(timerLogger))

	session := &Session{
		state:       editor.NewState(doc),
		projectID:   projectID,
		reducer:     editor.NewReducer(m.reducerOps...),
		saver:       m.saver,
		timers:      timers.NewController(cfg.onTick, timerOps...),
		metrics:     m.metrics,
		logger:      logger,
		onChange:    cfg.onChange,
		onSaveError: cfg.onSaveError,
		onClose:     m.forget,
	}
	session.applyTimers(session.timerSyncLocked())
	m.metrics.SessionOpened()
	logger.Info("session.opened", "pages", len(doc.Pages))
	return session
}

func hasOptions(opts []SessionOption) bool {
	for _, opt := range opts {
		if opt != nil {
			return true
		}
	}
	return false
}

func (m *Manager) forget(session *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, ok := m.sessions[session.projectID]; ok && current == session {
		delete(m.sessions, session.projectID)
	}
}

func (m *Manager) saveFailed(projectID string, err error) {
	m.metrics.RecordSave(err, 0)
	if session, ok := m.Session(projectID); ok {
		session.saveFailed(err)
	}
}
