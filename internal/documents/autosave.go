package documents

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/site"
)

// Saver writes a full document snapshot. *Bridge implements it.
type Saver interface {
	Save(ctx context.Context, projectID string, doc site.Site) error
}

// pendingSave tracks the newest unsaved snapshot of one project.
type pendingSave struct {
	doc     site.Site
	dirty   bool
	running bool
	timer   *time.Timer
	done    chan struct{}
}

// AutoSaver persists snapshots off the caller's goroutine. Saves for one
// project run one at a time and only the newest pending snapshot is written,
// so a slow write can never overwrite a newer one. With a debounce, rapid
// changes collapse into one save after the quiet period.
type AutoSaver struct {
	mu      sync.Mutex
	pending map[string]*pendingSave
	closed  bool

	saver    Saver
	debounce time.Duration
	timeout  time.Duration
	onSaved  func(projectID string, elapsed time.Duration)
	onError  func(projectID string, err error)
	logger   interfaces.Logger
}

// AutoSaverOption configures an AutoSaver.
type AutoSaverOption func(*AutoSaver)

// WithDebounce delays saves until no change arrived for d. Zero saves on
// every change.
func WithDebounce(d time.Duration) AutoSaverOption {
	return func(a *AutoSaver) {
		if d < 0 {
			d = 0
		}
		a.debounce = d
	}
}

// WithSaveTimeout bounds each write. Zero means no deadline.
func WithSaveTimeout(d time.Duration) AutoSaverOption {
	return func(a *AutoSaver) {
		if d < 0 {
			d = 0
		}
		a.timeout = d
	}
}

// WithOnSaved registers a callback run after each successful write.
func WithOnSaved(fn func(projectID string, elapsed time.Duration)) AutoSaverOption {
	return func(a *AutoSaver) {
		a.onSaved = fn
	}
}

// WithOnError registers the failure notifier. Failed saves are not retried.
func WithOnError(fn func(projectID string, err error)) AutoSaverOption {
	return func(a *AutoSaver) {
		a.onError = fn
	}
}

// WithAutoSaverLogger sets the logger for save failures.
func WithAutoSaverLogger(logger interfaces.Logger) AutoSaverOption {
	return func(a *AutoSaver) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAutoSaver creates an AutoSaver writing through saver.
func NewAutoSaver(saver Saver, opts ...AutoSaverOption) *AutoSaver {
	a := &AutoSaver{
		pending: make(map[string]*pendingSave),
		saver:   saver,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Enqueue records doc as the newest snapshot for projectID and schedules a
// write. It returns immediately.
func (a *AutoSaver) Enqueue(projectID string, doc site.Site) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ErrProjectIDRequired
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrAutoSaverClosed
	}

	slot, ok := a.pending[projectID]
	if !ok {
		slot = &pendingSave{}
		a.pending[projectID] = slot
	}
	slot.doc = doc.Clone()
	slot.dirty = true

	if a.debounce > 0 {
		if slot.timer != nil {
			slot.timer.Stop()
		}
		slot.timer = time.AfterFunc(a.debounce, func() {
			a.fire(projectID)
		})
		return nil
	}
	a.startLocked(projectID, slot)
	return nil
}

// Pending reports whether projectID has an unsaved or in-flight snapshot.
func (a *AutoSaver) Pending(projectID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	slot, ok := a.pending[strings.TrimSpace(projectID)]
	return ok && (slot.dirty || slot.running)
}

// FlushProject writes any pending snapshot for projectID now and waits for
// it, or for ctx to end.
func (a *AutoSaver) FlushProject(ctx context.Context, projectID string) error {
	projectID = strings.TrimSpace(projectID)
	a.mu.Lock()
	var waits []chan struct{}
	if slot, ok := a.pending[projectID]; ok {
		waits = a.flushLocked(projectID, slot, waits)
	}
	a.mu.Unlock()
	return wait(ctx, waits)
}

// Flush writes every pending snapshot now and waits for them.
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	var waits []chan struct{}
	for projectID, slot := range a.pending {
		waits = a.flushLocked(projectID, slot, waits)
	}
	a.mu.Unlock()
	return wait(ctx, waits)
}

// Close rejects further snapshots and flushes what is pending.
func (a *AutoSaver) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.Flush(ctx)
}

func (a *AutoSaver) flushLocked(projectID string, slot *pendingSave, waits []chan struct{}) []chan struct{} {
	if slot.timer != nil {
		slot.timer.Stop()
		slot.timer = nil
	}
	a.startLocked(projectID, slot)
	if slot.running {
		waits = append(waits, slot.done)
	}
	return waits
}

func (a *AutoSaver) fire(projectID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	slot, ok := a.pending[projectID]
	if !ok {
		return
	}
	slot.timer = nil
	a.startLocked(projectID, slot)
}

func (a *AutoSaver) startLocked(projectID string, slot *pendingSave) {
	if slot.running || !slot.dirty {
		return
	}
	slot.running = true
	slot.done = make(chan struct{})
	go a.drain(projectID, slot)
}

// drain writes snapshots for one project until nothing undebounced is left.
func (a *AutoSaver) drain(projectID string, slot *pendingSave) {
	for {
		a.mu.Lock()
		if !slot.dirty || slot.timer != nil {
			slot.running = false
			close(slot.done)
			if !slot.dirty && slot.timer == nil {
				delete(a.pending, projectID)
			}
			a.mu.Unlock()
			return
		}
		doc := slot.doc
		slot.dirty = false
		a.mu.Unlock()

		a.save(projectID, doc)
	}
}

func (a *AutoSaver) save(projectID string, doc site.Site) {
	ctx := context.Background()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	started := time.Now()
	if a.saver == nil {
		a.fail(projectID, &SaveError{ProjectID: projectID, Err: ErrRepositoryRequired})
		return
	}
	if err := a.saver.Save(ctx, projectID, doc); err != nil {
		a.fail(projectID, err)
		return
	}
	if a.onSaved != nil {
		a.onSaved(projectID, time.Since(started))
	}
}

func (a *AutoSaver) fail(projectID string, err error) {
	logging.WithProject(a.logger, projectID).Error("documents.autosave.failed", "error", err)
	if a.onError != nil {
		a.onError(projectID, err)
	}
}

func wait(ctx context.Context, waits []chan struct{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, done := range waits {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
