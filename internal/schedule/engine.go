// Package schedule manages the single pending auto clock-out: the arming
// policy, the persisted deadline and its registration with a timer facility.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/hashutil"
)

// DeadlineLayout is the persisted deadline format.
const DeadlineLayout = time.RFC3339Nano

// ErrSchedulingUnavailable means the deadline was saved but the timer
// facility refused to deliver it.
var ErrSchedulingUnavailable = errors.New("auto clock-out scheduling unavailable")

// DeadlineStore persists the raw deadline string.
type DeadlineStore interface {
	LoadDeadline() (string, error)
	SaveDeadline(value string) error
}

// Engine owns the single pending auto clock-out. It is not safe for
// concurrent use; the controller serializes access.
type Engine struct {
	store    DeadlineStore
	facility clock.Facility

	deadline   time.Time
	pending    bool
	handle     clock.Handle
	callbackID string
	registered time.Time
}

// NewEngine returns an Engine with nothing pending. Call Load or Restore to
// pick up a persisted deadline.
func NewEngine(store DeadlineStore, facility clock.Facility) *Engine {
	return &Engine{store: store, facility: facility}
}

// Load reads the persisted deadline into memory without registering it.
// An unparsable deadline reads as nothing pending.
func (e *Engine) Load() error {
	raw, err := e.store.LoadDeadline()
	if err != nil {
		return err
	}
	e.deadline, e.pending = parseDeadline(raw)
	return nil
}

// Arm replaces any pending deadline with target. The old registration is
// dropped before the new one is made. If the facility refuses, the deadline
// stays persisted and ErrSchedulingUnavailable is returned.
func (e *Engine) Arm(target time.Time) error {
	prevDeadline, prevPending := e.deadline, e.pending
	e.unregister()

	if err := e.store.SaveDeadline(target.Format(DeadlineLayout)); err != nil {
		if prevPending {
			_ = e.register(prevDeadline)
		}
		return err
	}
	e.deadline, e.pending = target, true

	return e.register(target)
}

// Cancel clears the deadline and drops the registration. It is a no-op
// when nothing is pending.
func (e *Engine) Cancel() error {
	e.unregister()
	if !e.pending {
		return nil
	}
	if err := e.store.SaveDeadline(""); err != nil {
		return err
	}
	e.deadline, e.pending = time.Time{}, false
	return nil
}

// IsPending reports whether a deadline is armed.
func (e *Engine) IsPending() bool { return e.pending }

// PendingTime returns the armed deadline.
func (e *Engine) PendingTime() (time.Time, bool) {
	return e.deadline, e.pending
}

// Owns reports whether callbackID belongs to the current registration.
// Callbacks from superseded registrations must be ignored.
func (e *Engine) Owns(callbackID string) bool {
	return e.pending && e.callbackID != "" && callbackID == e.callbackID
}

// Restore syncs the engine with the persisted deadline, which may have been
// written by another process. A registration for a deadline that is no
// longer persisted is dropped, and a future deadline without one is
// registered. A deadline at or before now is reported as missed and left
// pending for the caller to handle.
func (e *Engine) Restore(now time.Time) (missed bool, err error) {
	if err := e.Load(); err != nil {
		return false, err
	}
	if e.handle != "" && (!e.pending || !e.registered.Equal(e.deadline)) {
		e.unregister()
	}
	if !e.pending {
		return false, nil
	}
	if !e.deadline.After(now) {
		return true, nil
	}
	if e.handle != "" {
		return false, nil
	}
	return false, e.register(e.deadline)
}

func (e *Engine) register(target time.Time) error {
	id := hashutil.NewID("auto-clock-out", target)
	h, err := e.facility.ScheduleOneShot(target, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchedulingUnavailable, err)
	}
	e.handle, e.callbackID, e.registered = h, id, target
	return nil
}

func (e *Engine) unregister() {
	if e.handle != "" {
		e.facility.Cancel(e.handle)
	}
	e.handle, e.callbackID, e.registered = "", "", time.Time{}
}

func parseDeadline(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DeadlineLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t.Local(), true
}
