// Package clockstate holds the pure decision logic over a day's clock record.
// Nothing here performs I/O; callers persist the records it returns.
package clockstate

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition is returned when an option other than the current one
// is recorded.
var ErrInvalidTransition = errors.New("invalid clock transition")

// CurrentOption returns the first option without a recorded value. When the
// day is complete it returns AfternoonOut; check IsEndOfDay separately.
func CurrentOption(r Record) Option {
	for _, o := range Options {
		if r.Get(o) == "" {
			return o
		}
	}
	return Options[len(Options)-1]
}

// IsEndOfDay reports whether all four options are recorded.
func IsEndOfDay(r Record) bool {
	return r.Filled() == len(Options)
}

// IsClockedIn reports whether the most recently recorded option is an in event.
func IsClockedIn(r Record) bool {
	last, ok := lastRecorded(r)
	return ok && last.IsIn()
}

// IsNewDay reports whether the record belongs to a calendar day other than
// now's. A record without MorningIn, or with an unreadable date, is always new.
func IsNewDay(r Record, now time.Time) bool {
	if r.Get(MorningIn) == "" || r.Date == "" {
		return true
	}
	if _, err := time.Parse(TimeLayout, r.Get(MorningIn)); err != nil {
		return true
	}
	d, err := time.ParseInLocation(DateLayout, r.Date, now.Location())
	if err != nil {
		return true
	}
	y, m, day := now.Date()
	return d.Year() != y || d.Month() != m || d.Day() != day
}

// RecordClock returns a copy of r with option's slot set to now.
func RecordClock(r Record, option Option, now time.Time) (Record, error) {
	if IsEndOfDay(r) {
		return r, fmt.Errorf("%w: day is complete", ErrInvalidTransition)
	}
	if current := CurrentOption(r); option != current {
		return r, fmt.Errorf("%w: got %s, current is %s", ErrInvalidTransition, option, current)
	}
	return r.with(option, now), nil
}

// ForceClock records an out option from the deferred path. It changes the
// record only when option is an out event and is still current; the bool
// result reports whether anything was written.
func ForceClock(r Record, option Option, at time.Time) (Record, bool) {
	if option.IsIn() || IsEndOfDay(r) || CurrentOption(r) != option {
		return r, false
	}
	return r.with(option, at), true
}

func lastRecorded(r Record) (Option, bool) {
	for i := len(Options) - 1; i >= 0; i-- {
		if r.Get(Options[i]) != "" {
			return Options[i], true
		}
	}
	return 0, false
}
