package timers

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// TickFunc receives the wall-clock time of each tick.
type TickFunc func(now time.Time)

type job struct {
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// Runner owns one ticker goroutine per mounted key. Timers share no state
// and stop when unmounted.
type Runner struct {
	mu     sync.Mutex
	jobs   map[string]*job
	logger interfaces.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger attaches a logger.
func WithRunnerLogger(logger interfaces.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner returns an idle runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		jobs:   make(map[string]*job),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount starts a ticker for key. An existing timer under the same key is
// replaced. When immediate is set tick runs once before the first interval.
func (r *Runner) Mount(key string, interval time.Duration, immediate bool, tick TickFunc) {
	if key == "" || interval <= 0 || tick == nil {
		return
	}
	r.Unmount(key)

	ctx, cancel := context.WithCancel(context.Background())
	j := &job{interval: interval, cancel: cancel, done: make(chan struct{})}

	r.mu.Lock()
	r.jobs[key] = j
	r.mu.Unlock()

	go func() {
		defer close(j.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		if immediate {
			tick(time.Now())
		}
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				tick(now)
			}
		}
	}()
	r.logger.Trace("timers.mounted", "key", key, "interval", interval)
}

// Unmount stops the timer under key and waits for its goroutine to exit.
func (r *Runner) Unmount(key string) {
	r.mu.Lock()
	j, ok := r.jobs[key]
	if ok {
		delete(r.jobs, key)
	}
	r.mu.Unlock()
	if !ok {
		return
	}
	j.cancel()
	<-j.done
	r.logger.Trace("timers.unmounted", "key", key)
}

// Retain unmounts every timer whose key is not listed.
func (r *Runner) Retain(keys []string) {
	for _, key := range r.Active() {
		if !slices.Contains(keys, key) {
			r.Unmount(key)
		}
	}
}

// StopAll unmounts every timer.
func (r *Runner) StopAll() {
	for _, key := range r.Active() {
		r.Unmount(key)
	}
}

// Active lists mounted keys in sorted order.
func (r *Runner) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.jobs))
	for key := range r.jobs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
