// Package clock abstracts wall-clock time and one-shot timers so the
// auto clock-out path can be driven deterministically in tests.
package clock

import "time"

// Clock is the time source used by the controller and the timer facility.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time
	// AfterFunc calls f in its own goroutine (real) or during Advance
	// (fake) once d has elapsed.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the Timer from firing. It returns false if the timer has
// already fired or been stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stopFunc: timer.Stop}
}
