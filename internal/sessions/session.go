package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/observability"
	"github.com/goliatone/go-pagebuilder/internal/timers"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/site"
)

var (
	ErrSessionClosed     = errors.New("sessions: session closed")
	ErrProjectIDRequired = errors.New("sessions: project id required")
	ErrManagerClosed     = errors.New("sessions: manager closed")
	ErrAlreadyOpen       = errors.New("sessions: session already open, options not applied")
)

// ChangeFunc observes every accepted dispatch.
type ChangeFunc func(state editor.State, outcome editor.Outcome)

// Session owns the editor state of one project. Dispatch is the only
// writer; readers get snapshots.
type Session struct {
	mu      sync.Mutex
	closed  bool
	state   editor.State
	loadErr error

	projectID string
	reducer   *editor.Reducer
	saver     *documents.AutoSaver
	timers    *timers.Controller
	metrics   *observability.Metrics
	logger    interfaces.Logger
	onChange  ChangeFunc
	onClose   func(*Session)

	saveMu      sync.Mutex
	lastSaveErr error
	onSaveError func(error)

	// timerSeq is guarded by mu, timerApplied by timerMu. Timer changes are
	// applied outside mu so tick handlers may read the session.
	timerMu      sync.Mutex
	timerSeq     uint64
	timerApplied uint64
}

// timerSync is the page the timers should follow. A sync older than the
// last applied one is dropped.
type timerSync struct {
	seq  uint64
	page site.Page
	show bool
}

// SessionOption configures a session at open time.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	onTick      func(timers.Tick)
	onChange    ChangeFunc
	onSaveError func(error)
}

// WithTickHandler receives countdown and carousel ticks for the page shown.
// It runs on timer goroutines and may read the session, but must not
// dispatch.
func WithTickHandler(fn func(timers.Tick)) SessionOption {
	return func(cfg *sessionConfig) {
		cfg.onTick = fn
	}
}

// WithChangeHandler observes accepted dispatches. It runs under the session
// lock and must not dispatch.
func WithChangeHandler(fn ChangeFunc) SessionOption {
	return func(cfg *sessionConfig) {
		cfg.onChange = fn
	}
}

// WithSaveErrorHandler is told about failed background saves.
func WithSaveErrorHandler(fn func(error)) SessionOption {
	return func(cfg *sessionConfig) {
		cfg.onSaveError = fn
	}
}

// ProjectID returns the project the session edits.
func (s *Session) ProjectID() string { return s.projectID }

// State returns a deep copy of the current state.
func (s *Session) State() editor.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Form resolves the properties form for the current selection.
func (s *Session) Form() editor.FormView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return editor.ResolveForm(s.state.Clone())
}

// LoadError reports why the stored document could not be used when the
// session was opened. The session then edits the default document.
func (s *Session) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// LastSaveError returns the most recent background save failure, if any.
func (s *Session) LastSaveError() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.lastSaveErr
}

// ActiveTimers lists the keys of the timers mounted for the current page.
func (s *Session) ActiveTimers() []string {
	return s.timers.Active()
}

// Dispatch applies action. Missing targets and guard violations leave the
// state unchanged and are reported in the outcome without an error; invalid
// actions return the validation error.
func (s *Session) Dispatch(ctx context.Context, action editor.Action) (editor.Outcome, error) {
	outcome, resync, err := s.reduce(ctx, action)
	if resync != nil {
		s.applyTimers(*resync)
	}
	return outcome, err
}

func (s *Session) reduce(ctx context.Context, action editor.Action) (editor.Outcome, *timerSync, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return editor.Outcome{Err: ErrSessionClosed}, nil, ErrSessionClosed
	}
	actionType := "unknown"
	if action != nil {
		actionType = action.Type()
	}
	logger := logging.WithFields(s.logger, map[string]any{logging.FieldAction: actionType}).WithContext(ctx)

	started := time.Now()
	next, outcome := s.reducer.Reduce(s.state, action)
	elapsed := time.Since(started)

	if outcome.Err != nil {
		if !outcome.Benign() {
			s.metrics.RecordAction(actionType, observability.ResultRejected, elapsed)
			logger.Warn("session.dispatch.rejected", "error", outcome.Err)
			return outcome, nil, outcome.Err
		}
		s.metrics.RecordAction(actionType, observability.ResultNoop, elapsed)
		logger.Debug("session.dispatch.noop", "reason", outcome.Err)
		return outcome, nil, nil
	}
	if outcome.Noop() {
		s.metrics.RecordAction(actionType, observability.ResultNoop, elapsed)
		return outcome, nil, nil
	}

	s.state = next
	s.metrics.RecordAction(actionType, observability.ResultChanged, elapsed)

	if outcome.DocumentChanged {
		if err := s.saver.Enqueue(s.projectID, next.Site); err != nil {
			logger.Error("session.autosave.enqueue_failed", "error", err)
		}
	}
	var resync *timerSync
	if outcome.DocumentChanged || outcome.PageChanged {
		pending := s.timerSyncLocked()
		resync = &pending
	}
	if s.onChange != nil {
		s.onChange(next.Clone(), outcome)
	}
	logger.Debug("session.dispatch.applied",
		"document_changed", outcome.DocumentChanged,
		"selection_changed", outcome.SelectionChanged,
		"page_changed", outcome.PageChanged,
	)
	return outcome, resync, nil
}

// Flush waits for pending saves of this project.
func (s *Session) Flush(ctx context.Context) error {
	return s.saver.FlushProject(ctx, s.projectID)
}

// Close stops the session's timers and flushes its pending save. Further
// dispatches fail with ErrSessionClosed.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	stop := s.timerSyncLocked()
	s.metrics.SessionClosed()
	s.mu.Unlock()

	s.applyTimers(stop)

	if s.onClose != nil {
		s.onClose(s)
	}
	s.logger.WithContext(ctx).Info("session.closed")
	return s.Flush(ctx)
}

// timerSyncLocked snapshots the page the timers should follow. A closed
// session follows no page.
func (s *Session) timerSyncLocked() timerSync {
	s.timerSeq++
	pending := timerSync{seq: s.timerSeq}
	if !s.closed {
		if page, ok := s.state.CurrentPage(); ok {
			pending.page = page.Clone()
			pending.show = true
		}
	}
	return pending
}

// applyTimers waits for unmounted tick goroutines to exit, so it must run
// without mu held.
func (s *Session) applyTimers(pending timerSync) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if pending.seq <= s.timerApplied {
		return
	}
	s.timerApplied = pending.seq

	before := len(s.timers.Active())
	if pending.show {
		s.timers.Sync(pending.page)
	} else {
		s.timers.Stop()
	}
	s.metrics.TimersChanged(len(s.timers.Active()) - before)
}

func (s *Session) saveFailed(err error) {
	s.saveMu.Lock()
	s.lastSaveErr = err
	handler := s.onSaveError
	s.saveMu.Unlock()
	if handler != nil {
		handler(err)
	}
}
