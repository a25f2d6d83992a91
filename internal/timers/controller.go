package timers

import (
	"slices"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/site"
)

// Kind distinguishes countdown and carousel timers.
type Kind string

const (
	KindCountdown Kind = "countdown"
	KindCarousel  Kind = "carousel"
)

// Spec describes the timer a mounted element needs.
type Spec struct {
	Key       string
	BlockID   string
	ElementID string
	Kind      Kind
	Interval  time.Duration
	Target    time.Time
	Slides    int
}

// Tick is a derived, non-persisted value produced by a running timer.
type Tick struct {
	Key       string
	BlockID   string
	ElementID string
	Kind      Kind
	At        time.Time
	Remaining Remaining
	Slide     int
}

// Key builds the timer key of an element.
func Key(blockID, elementID string) string {
	return blockID + "/" + elementID
}

// Collect lists the timers needed by the elements of page. Countdowns with
// unparsable targets and carousels without autoplay or images are skipped.
// carouselFallback applies to carousels without a usable interval.
func Collect(page site.Page, loc *time.Location, countdownInterval, carouselFallback time.Duration) []Spec {
	if countdownInterval <= 0 {
		countdownInterval = CountdownInterval
	}
	if carouselFallback <= 0 {
		carouselFallback = DefaultCarouselInterval
	}
	var specs []Spec
	for _, block := range page.Blocks {
		for _, element := range block.Elements {
			switch content := element.Content.(type) {
			case site.CountdownContent:
				target, err := ParseTargetDate(content.TargetDate, loc)
				if err != nil {
					continue
				}
				specs = append(specs, Spec{
					Key: Key(block.ID, element.ID), BlockID: block.ID, ElementID: element.ID,
					Kind: KindCountdown, Interval: countdownInterval, Target: target,
				})
			case site.CarouselContent:
				if !content.Autoplay || len(content.Images) < 2 {
					continue
				}
				specs = append(specs, Spec{
					Key: Key(block.ID, element.ID), BlockID: block.ID, ElementID: element.ID,
					Kind: KindCarousel, Interval: carouselInterval(content.IntervalMs, carouselFallback), Slides: len(content.Images),
				})
			}
		}
	}
	return specs
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLocation sets the zone used for date-only countdown targets.
func WithLocation(loc *time.Location) ControllerOption {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithCountdownInterval overrides the countdown refresh rate.
func WithCountdownInterval(interval time.Duration) ControllerOption {
	return func(c *Controller) {
		if interval > 0 {
			c.countdownInterval = interval
		}
	}
}

// WithCarouselFallback sets the rotation interval of carousels that carry
// none.
func WithCarouselFallback(interval time.Duration) ControllerOption {
	return func(c *Controller) {
		if interval > 0 {
			c.carouselFallback = interval
		}
	}
}

// WithControllerLogger attaches a logger.
func WithControllerLogger(logger interfaces.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller keeps the runner in step with the elements of the page being
// shown and forwards derived ticks to a callback.
type Controller struct {
	mu                sync.Mutex
	runner            *Runner
	mounted           map[string]Spec
	onTick            func(Tick)
	loc               *time.Location
	countdownInterval time.Duration
	carouselFallback  time.Duration
	logger            interfaces.Logger
}

// NewController builds a controller. onTick runs on timer goroutines.
func NewController(onTick func(Tick), opts ...ControllerOption) *Controller {
	c := &Controller{
		mounted:           make(map[string]Spec),
		onTick:            onTick,
		loc:               time.Local,
		countdownInterval: CountdownInterval,
		carouselFallback:  DefaultCarouselInterval,
		logger:            logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.onTick == nil {
		c.onTick = func(Tick) {}
	}
	c.runner = NewRunner(WithRunnerLogger(c.logger))
	return c
}

// Sync mounts timers for the elements of page and unmounts the rest. Timers
// whose spec is unchanged keep running.
func (c *Controller) Sync(page site.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()

	specs := Collect(page, c.loc, c.countdownInterval, c.carouselFallback)
	keep := make([]string, 0, len(specs))
	for _, spec := range specs {
		keep = append(keep, spec.Key)
		if prev, ok := c.mounted[spec.Key]; ok && prev == spec {
			continue
		}
		c.mounted[spec.Key] = spec
		c.mount(spec)
	}
	for key := range c.mounted {
		if !slices.Contains(keep, key) {
			delete(c.mounted, key)
		}
	}
	c.runner.Retain(keep)
	c.logger.Debug("timers.sync", logging.FieldPageID, page.ID, "active", len(keep))
}

// Stop unmounts every timer.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runner.StopAll()
	c.mounted = make(map[string]Spec)
}

// Active lists the keys of running timers.
func (c *Controller) Active() []string {
	return c.runner.Active()
}

func (c *Controller) mount(spec Spec) {
	base := Tick{Key: spec.Key, BlockID: spec.BlockID, ElementID: spec.ElementID, Kind: spec.Kind}
	switch spec.Kind {
	case KindCountdown:
		c.runner.Mount(spec.Key, spec.Interval, true, func(now time.Time) {
			tick := base
			tick.At = now
			tick.Remaining = Countdown(spec.Target, now)
			c.onTick(tick)
		})
	case KindCarousel:
		slide := 0
		c.runner.Mount(spec.Key, spec.Interval, false, func(now time.Time) {
			slide = NextSlide(slide, spec.Slides)
			tick := base
			tick.At = now
			tick.Slide = slide
			c.onTick(tick)
		})
	}
}
