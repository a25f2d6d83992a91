package timers

import (
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/site"
)

func TestCountdownSplitsDuration(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	target := now.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second + 600*time.Millisecond)

	got := Countdown(target, now)
	want := Remaining{Days: 2, Hours: 3, Minutes: 4, Seconds: 5}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if past := Countdown(now.Add(-time.Minute), now); !past.Expired || past.Days != 0 || past.Seconds != 0 {
		t.Fatalf("expected expired zero countdown, got %+v", past)
	}
}

func TestParseTargetDate(t *testing.T) {
	date, err := ParseTargetDate("2024-12-25", time.UTC)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if !date.Equal(time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", date)
	}
	if _, err := ParseTargetDate("2024-12-25T10:30:00Z", nil); err != nil {
		t.Fatalf("parse rfc3339: %v", err)
	}
	if _, err := ParseTargetDate("amanhã", time.UTC); err != ErrInvalidTargetDate {
		t.Fatalf("expected ErrInvalidTargetDate, got %v", err)
	}
}

func TestSlideMath(t *testing.T) {
	if got := SlideIndex(3, 7*time.Second, 3*time.Second); got != 2 {
		t.Fatalf("expected slide 2, got %d", got)
	}
	if got := SlideIndex(3, 9*time.Second, 3*time.Second); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
	if got := SlideIndex(0, time.Hour, time.Second); got != 0 {
		t.Fatalf("expected 0 for empty carousel, got %d", got)
	}
	if got := NextSlide(1, 2); got != 0 {
		t.Fatalf("expected wrap, got %d", got)
	}
	if CarouselInterval(0) != DefaultCarouselInterval || CarouselInterval(500) != 500*time.Millisecond {
		t.Fatalf("unexpected carousel intervals")
	}
}

func timedPage() site.Page {
	page := site.NewPage("p", "Home")
	page.Blocks = []site.Block{{
		ID: "b",
		Elements: []site.Element{
			{ID: "c", Type: site.ElementCountdown, Content: site.CountdownContent{TargetDate: "2999-01-01"}},
			{ID: "bad", Type: site.ElementCountdown, Content: site.CountdownContent{TargetDate: "soon"}},
			{ID: "k", Type: site.ElementCarousel, Content: site.CarouselContent{Images: []string{"a", "b"}, Autoplay: true, IntervalMs: 20}},
			{ID: "still", Type: site.ElementCarousel, Content: site.CarouselContent{Images: []string{"a", "b"}}},
			{ID: "t", Type: site.ElementText, Content: site.TextContent{Text: "x"}},
		},
	}}
	return page
}

func TestCollectSkipsStaticElements(t *testing.T) {
	specs := Collect(timedPage(), time.UTC, 0, 0)
	if len(specs) != 2 {
		t.Fatalf("expected 2 timers, got %+v", specs)
	}
	if specs[0].Kind != KindCountdown || specs[0].Interval != CountdownInterval {
		t.Fatalf("unexpected countdown spec %+v", specs[0])
	}
	if specs[1].Kind != KindCarousel || specs[1].Interval != 20*time.Millisecond || specs[1].Slides != 2 {
		t.Fatalf("unexpected carousel spec %+v", specs[1])
	}
}

func TestControllerSyncAndStop(t *testing.T) {
	var mu sync.Mutex
	seen := map[Kind]int{}
	controller := NewController(func(tick Tick) {
		mu.Lock()
		seen[tick.Kind]++
		mu.Unlock()
	}, WithLocation(time.UTC), WithCountdownInterval(10*time.Millisecond))

	controller.Sync(timedPage())
	if active := controller.Active(); len(active) != 2 {
		t.Fatalf("expected 2 active timers, got %v", active)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		done := seen[KindCountdown] > 0 && seen[KindCarousel] > 0
		mu.Unlock()
		if done {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected ticks from both timers, got %v", seen)
		}
		time.Sleep(5 * time.Millisecond)
	}

	controller.Sync(site.NewPage("other", "Other"))
	if active := controller.Active(); len(active) != 0 {
		t.Fatalf("expected timers stopped on page switch, got %v", active)
	}

	controller.Sync(timedPage())
	controller.Stop()
	if active := controller.Active(); len(active) != 0 {
		t.Fatalf("expected no timers after stop, got %v", active)
	}
}

func TestRunnerUnmountStopsTicks(t *testing.T) {
	runner := NewRunner()
	ticks := make(chan time.Time, 64)
	runner.Mount("k", 5*time.Millisecond, true, func(now time.Time) { ticks <- now })

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatalf("expected immediate tick")
	}
	runner.Unmount("k")

	for len(ticks) > 0 {
		<-ticks
	}
	time.Sleep(20 * time.Millisecond)
	if len(ticks) != 0 {
		t.Fatalf("expected no ticks after unmount, got %d", len(ticks))
	}
}
