package timers

import (
	"errors"
	"strings"
	"time"
)

const (
	// CountdownInterval is the refresh rate of countdown elements.
	CountdownInterval = time.Second
	// DefaultCarouselInterval applies when a carousel has no usable interval.
	DefaultCarouselInterval = 3 * time.Second
)

var ErrInvalidTargetDate = errors.New("timers: invalid countdown target date")

// Remaining is the time left until a countdown target.
type Remaining struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

// Countdown splits the time between now and target into days, hours,
// minutes and seconds. Past targets yield zero values with Expired set.
func Countdown(target, now time.Time) Remaining {
	left := target.Sub(now)
	if left <= 0 {
		return Remaining{Expired: true}
	}
	total := int64(left / time.Second)
	return Remaining{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// ParseTargetDate accepts "YYYY-MM-DD" (midnight in loc), local datetimes
// without zone and RFC3339 timestamps.
func ParseTargetDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidTargetDate
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTargetDate
}

// CarouselInterval converts a millisecond interval, falling back to the
// default when ms is not positive.
func CarouselInterval(ms int) time.Duration {
	return carouselInterval(ms, DefaultCarouselInterval)
}

func carouselInterval(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// SlideIndex returns the slide shown after elapsed time with the given
// rotation interval.
func SlideIndex(count int, elapsed, interval time.Duration) int {
	if count <= 0 {
		return 0
	}
	if interval <= 0 || elapsed <= 0 {
		return 0
	}
	return int(int64(elapsed/interval) % int64(count))
}

// NextSlide advances the slide index, wrapping to the first slide.
func NextSlide(current, count int) int {
	if count <= 0 {
		return 0
	}
	return (current + 1) % count
}
