// Package controller applies user and timer events to the clock record and
// the auto clock-out schedule. Every event goes through Handle, which holds
// a single lock for the whole read-modify-write.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/clockstate"
	"github.com/Flyrell/clocker/internal/schedule"
	"github.com/Flyrell/clocker/internal/store"
)

// EventKind enumerates what can happen to the controller.
type EventKind int

const (
	// Load refreshes state from storage, handling rollover and restarts.
	Load EventKind = iota
	// UserClock records the current option.
	UserClock
	// TimerFired forces the pending auto clock-out.
	TimerFired
	// UserCancelSchedule drops the pending auto clock-out.
	UserCancelSchedule
	// Reset clears the day's record and the schedule.
	Reset
)

func (k EventKind) String() string {
	switch k {
	case Load:
		return "load"
	case UserClock:
		return "clock"
	case TimerFired:
		return "timer-fired"
	case UserCancelSchedule:
		return "cancel-schedule"
	case Reset:
		return "reset"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is delivered to Handle. CallbackID is set for TimerFired events that
// come from the timer facility; an empty ID forces the pending deadline.
type Event struct {
	Kind       EventKind
	CallbackID string
}

// Result describes what an event changed.
type Result struct {
	// Recorded is set when a slot was written.
	Recorded   bool
	Option     clockstate.Option
	RecordedAt time.Time

	// Armed is set when a new deadline was saved.
	Armed    bool
	Deadline time.Time

	// Canceled is set when a pending deadline was dropped.
	Canceled bool
	// RolledOver is set when a previous day's record was cleared.
	RolledOver bool

	// Warning holds a non-fatal problem, such as schedule.ErrSchedulingUnavailable.
	Warning error
}

// View is the read-only state offered to the presentation layer.
type View struct {
	Record        clockstate.Record
	CurrentOption clockstate.Option
	IsClockedIn   bool
	IsEndOfDay    bool
	IsPending     bool
	PendingTime   time.Time
}

// Deps bundles the controller's collaborators.
type Deps struct {
	Store    *store.Store
	Facility clock.Facility
	Clock    clock.Clock
	Policy   schedule.Policy
	Logger   *slog.Logger
}

// Controller owns the in-memory copy of the day's state. Storage remains the
// source of truth; the copy is refreshed on Load and after storage failures.
type Controller struct {
	mu     sync.Mutex
	store  *store.Store
	engine *schedule.Engine
	clock  clock.Clock
	policy schedule.Policy
	log    *slog.Logger

	record clockstate.Record
}

// New returns a Controller. Nil Clock and Logger default to the real clock
// and a discarding logger.
func New(d Deps) *Controller {
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.Facility == nil {
		d.Facility = clock.Unavailable{}
	}
	return &Controller{
		store:  d.Store,
		engine: schedule.NewEngine(d.Store, d.Facility),
		clock:  d.Clock,
		policy: d.Policy,
		log:    d.Logger,
	}
}

// Handle applies ev. Every event first re-reads the record and the
// deadline from storage, since another process may have changed them, and
// settles a deadline that has passed.
func (c *Controller) Handle(ctx context.Context, ev Event) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	pre, err := c.onLoad(ctx, now)
	if err != nil || ev.Kind == Load {
		return pre, err
	}

	var res Result
	switch ev.Kind {
	case UserClock:
		res, err = c.userClock(ctx, now)
	case TimerFired:
		res, err = c.timerFired(ctx, now, ev.CallbackID)
	case UserCancelSchedule:
		res, err = c.cancelSchedule(ctx)
	case Reset:
		res, err = c.reset(ctx)
	default:
		return Result{}, fmt.Errorf("unknown event %s", ev.Kind)
	}
	return merge(pre, res), err
}

// merge folds what the implicit load did into the event's result.
func merge(pre, res Result) Result {
	if pre.Recorded && !res.Recorded {
		res.Recorded, res.Option, res.RecordedAt = true, pre.Option, pre.RecordedAt
	}
	res.Canceled = res.Canceled || pre.Canceled
	res.RolledOver = res.RolledOver || pre.RolledOver
	if res.Warning == nil {
		res.Warning = pre.Warning
	}
	return res
}

// View returns a snapshot of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline, pending := c.engine.PendingTime()
	return View{
		Record:        c.record,
		CurrentOption: clockstate.CurrentOption(c.record),
		IsClockedIn:   clockstate.IsClockedIn(c.record),
		IsEndOfDay:    clockstate.IsEndOfDay(c.record),
		IsPending:     pending,
		PendingTime:   deadline,
	}
}

// Policy returns the arming policy in use.
func (c *Controller) Policy() schedule.Policy { return c.policy }

// Listen delivers fired callback IDs to Handle until ctx is done. Each
// value on refresh triggers a Load, which picks up deadlines armed or
// canceled by other processes. A nil refresh channel disables that.
func (c *Controller) Listen(ctx context.Context, fired <-chan string, refresh <-chan time.Time) error {
	for {
		var (
			res Result
			err error
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case id := <-fired:
			res, err = c.Handle(ctx, Event{Kind: TimerFired, CallbackID: id})
		case <-refresh:
			res, err = c.Handle(ctx, Event{Kind: Load})
		}
		if err != nil {
			c.log.ErrorContext(ctx, "auto clock-out failed", "err", err)
			continue
		}
		if res.Recorded {
			c.log.InfoContext(ctx, "auto clocked out",
				"option", res.Option.Key(), "at", res.RecordedAt.Format(clockstate.TimeLayout))
		}
	}
}

func (c *Controller) onLoad(ctx context.Context, now time.Time) (Result, error) {
	var res Result

	record, err := c.store.Load()
	if err != nil {
		return res, err
	}

	missed, err := c.engine.Restore(now)
	switch {
	case errors.Is(err, schedule.ErrSchedulingUnavailable):
		res.Warning = err
	case err != nil:
		return res, err
	}

	if missed {
		deadline, _ := c.engine.PendingTime()
		c.log.InfoContext(ctx, "auto clock-out deadline reached", "deadline", deadline)
		if schedule.SameDay(deadline, now) && !clockstate.IsNewDay(record, deadline) {
			option := clockstate.CurrentOption(record)
			if next, changed := clockstate.ForceClock(record, option, deadline); changed {
				if err := c.store.Save(next); err != nil {
					return res, err
				}
				record = next
				res.Recorded, res.Option, res.RecordedAt = true, option, deadline
			}
		}
		if err := c.engine.Cancel(); err != nil {
			return res, err
		}
		res.Canceled = true
	}

	if clockstate.IsNewDay(record, now) {
		rolled, err := c.rollover(ctx, record)
		if err != nil {
			return res, err
		}
		record = clockstate.NewRecord()
		res.RolledOver = rolled
	}

	c.record = record
	return res, nil
}

// rollover clears a previous day's record and any deadline left from it.
// It reports whether there was anything to clear.
func (c *Controller) rollover(ctx context.Context, record clockstate.Record) (bool, error) {
	rolled := false
	if record.Filled() > 0 {
		c.log.InfoContext(ctx, "new day, clearing record", "previous", record.Date)
		if err := c.store.Clear(); err != nil {
			return false, err
		}
		rolled = true
	}
	if c.engine.IsPending() {
		if err := c.engine.Cancel(); err != nil {
			return rolled, err
		}
		rolled = true
	}
	return rolled, nil
}

func (c *Controller) userClock(ctx context.Context, now time.Time) (Result, error) {
	var res Result

	prev := c.record
	option := clockstate.CurrentOption(prev)
	next, err := clockstate.RecordClock(prev, option, now)
	if err != nil {
		c.log.WarnContext(ctx, "ignoring clock", "option", option.Key(), "err", err)
		return res, err
	}
	if err := c.store.Save(next); err != nil {
		c.resync(ctx)
		return res, err
	}
	res.Recorded, res.Option, res.RecordedAt = true, option, now

	if c.engine.IsPending() && option == c.policy.Trigger.Next() {
		if err := c.engine.Cancel(); err != nil {
			return res, c.revert(ctx, prev, err)
		}
		res.Canceled = true
	}

	if target, ok := c.policy.Target(option, now); ok {
		err := c.engine.Arm(target)
		switch {
		case errors.Is(err, schedule.ErrSchedulingUnavailable):
			c.log.WarnContext(ctx, "auto clock-out saved but not scheduled", "deadline", target, "err", err)
			res.Warning = err
		case err != nil:
			return Result{}, c.revert(ctx, prev, err)
		}
		res.Armed, res.Deadline = true, target
	}

	c.record = next
	return res, nil
}

// timerFired handles a fire that arrives before its deadline. A fire at or
// after the deadline, including one delivered the next day, has already
// been settled by onLoad at the deadline time.
func (c *Controller) timerFired(ctx context.Context, now time.Time, callbackID string) (Result, error) {
	var res Result

	if !c.engine.IsPending() {
		c.log.DebugContext(ctx, "timer fired with nothing pending", "callback", callbackID)
		return res, nil
	}
	if callbackID != "" && !c.engine.Owns(callbackID) {
		c.log.DebugContext(ctx, "ignoring superseded timer", "callback", callbackID)
		return res, nil
	}

	option := clockstate.CurrentOption(c.record)
	next, changed := clockstate.ForceClock(c.record, option, now)
	if changed {
		if err := c.store.Save(next); err != nil {
			c.resync(ctx)
			return res, err
		}
		res.Recorded, res.Option, res.RecordedAt = true, option, now
	}

	if err := c.engine.Cancel(); err != nil {
		if changed {
			return Result{}, c.revert(ctx, c.record, err)
		}
		c.resync(ctx)
		return Result{}, err
	}
	res.Canceled = true

	c.record = next
	return res, nil
}

func (c *Controller) cancelSchedule(ctx context.Context) (Result, error) {
	if !c.engine.IsPending() {
		return Result{}, nil
	}
	if err := c.engine.Cancel(); err != nil {
		c.resync(ctx)
		return Result{}, err
	}
	return Result{Canceled: true}, nil
}

func (c *Controller) reset(ctx context.Context) (Result, error) {
	if err := c.store.Clear(); err != nil {
		c.resync(ctx)
		return Result{}, err
	}
	c.record = clockstate.NewRecord()

	res := Result{RolledOver: true}
	if c.engine.IsPending() {
		if err := c.engine.Cancel(); err != nil {
			c.resync(ctx)
			return Result{}, err
		}
		res.Canceled = true
	}
	return res, nil
}

// revert writes prev back after a later step of an update failed, then
// reloads the in-memory copy from storage. It returns cause.
func (c *Controller) revert(ctx context.Context, prev clockstate.Record, cause error) error {
	if err := c.store.Save(prev); err != nil {
		c.log.ErrorContext(ctx, "could not revert record", "err", err)
	}
	c.resync(ctx)
	return cause
}

// resync reloads the in-memory copy from the last durable snapshot.
func (c *Controller) resync(ctx context.Context) {
	if r, err := c.store.Load(); err == nil {
		c.record = r
	} else {
		c.log.ErrorContext(ctx, "could not reload record", "err", err)
	}
	if err := c.engine.Load(); err != nil {
		c.log.ErrorContext(ctx, "could not reload deadline", "err", err)
	}
}
