package schedule

import (
	"time"

	"github.com/Flyrell/clocker/internal/clockstate"
	"github.com/teambition/rrule-go"
)

// DefaultOffset is the delay between the trigger clock and the auto clock-out.
const DefaultOffset = 4*time.Hour + 30*time.Minute

// Policy decides when recording an option arms the auto clock-out and
// what the deadline is.
type Policy struct {
	// Trigger is the in option whose recording arms the schedule.
	Trigger clockstate.Option
	// After is added to the trigger's clock time. Ignored when At is set.
	After time.Duration
	// At is a fixed time of day for the deadline.
	At *TimeOfDay
	// Workdays restricts arming to matching days. Nil means every day.
	Workdays *rrule.RRule
	// Disabled turns auto clock-out off entirely.
	Disabled bool
}

// DefaultPolicy arms 4h30m after the afternoon clock in, every day.
func DefaultPolicy() Policy {
	return Policy{Trigger: clockstate.AfternoonIn, After: DefaultOffset}
}

// Target returns the auto clock-out deadline for a recording of option at
// clockedAt, and false if this recording does not arm anything. The
// deadline never passes the end of clockedAt's day.
func (p Policy) Target(option clockstate.Option, clockedAt time.Time) (time.Time, bool) {
	if p.Disabled || option != p.Trigger || !IsWorkday(p.Workdays, clockedAt) {
		return time.Time{}, false
	}

	var target time.Time
	switch {
	case p.At != nil:
		target = p.At.On(clockedAt)
	case p.After > 0:
		target = clockedAt.Add(p.After)
	default:
		return time.Time{}, false
	}

	if endOfDay := EndOfDay(clockedAt); target.After(endOfDay) {
		target = endOfDay
	}
	if !target.After(clockedAt) {
		return time.Time{}, false
	}
	return target, true
}

// EndOfDay returns the last millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Millisecond)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
