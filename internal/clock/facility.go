package clock

import (
	"errors"
	"sync"
	"time"
)

// ErrUnavailable is returned by a facility that cannot deliver callbacks.
var ErrUnavailable = errors.New("timer facility unavailable")

// Handle identifies a one-shot registration.
type Handle string

// Facility delivers one-shot callbacks at a wall-clock time.
type Facility interface {
	// ScheduleOneShot arranges for callbackID to be delivered at target.
	ScheduleOneShot(target time.Time, callbackID string) (Handle, error)
	// Cancel drops a registration. Unknown handles are ignored.
	Cancel(h Handle)
}

// InProcess is a Facility backed by Clock.AfterFunc. Fired callback IDs are
// sent on the channel returned by Fired. The channel has a single slot;
// a fire that finds it full is dropped.
type InProcess struct {
	clock Clock
	fired chan string

	mu     sync.Mutex
	timers map[Handle]*Timer
}

// NewFacility returns an InProcess facility driven by c.
func NewFacility(c Clock) *InProcess {
	return &InProcess{
		clock:  c,
		fired:  make(chan string, 1),
		timers: make(map[Handle]*Timer),
	}
}

// Fired delivers the callback ID of every timer that goes off.
func (f *InProcess) Fired() <-chan string { return f.fired }

func (f *InProcess) ScheduleOneShot(target time.Time, callbackID string) (Handle, error) {
	h := Handle(callbackID)
	d := target.Sub(f.clock.Now())

	f.mu.Lock()
	if old, ok := f.timers[h]; ok {
		old.Stop()
	}
	f.mu.Unlock()

	t := f.clock.AfterFunc(d, func() {
		f.mu.Lock()
		delete(f.timers, h)
		f.mu.Unlock()
		select {
		case f.fired <- callbackID:
		default:
		}
	})

	f.mu.Lock()
	f.timers[h] = t
	f.mu.Unlock()
	return h, nil
}

func (f *InProcess) Cancel(h Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.timers[h]; ok {
		t.Stop()
		delete(f.timers, h)
	}
}

// Unavailable refuses every registration. Short-lived CLI invocations use
// it since their process exits long before any deadline.
type Unavailable struct{}

func (Unavailable) ScheduleOneShot(time.Time, string) (Handle, error) {
	return "", ErrUnavailable
}

func (Unavailable) Cancel(Handle) {}
