package clockstate

import "time"

const (
	// TimeLayout is the format of a recorded slot (HH:mm:ss.SSS, local time).
	TimeLayout = "15:04:05.000"
	// DateLayout is the format of the record's calendar date.
	DateLayout = "2006-01-02"
)

// Record holds the current day's four clock timestamps. The array keeps
// every option present; an empty string means not yet recorded.
type Record struct {
	Slots [4]string
	// Date is the calendar day of the MorningIn slot.
	Date string
}

// NewRecord returns an all-empty record.
func NewRecord() Record {
	return Record{}
}

// Get returns the recorded value for the option.
func (r Record) Get(o Option) string {
	if !o.Valid() {
		return ""
	}
	return r.Slots[o.index()]
}

// Time parses the option's slot onto the calendar day of day.
func (r Record) Time(o Option, day time.Time) (time.Time, bool) {
	v := r.Get(o)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TimeLayout, v, day.Location())
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), day.Location()), true
}

// Filled returns the number of recorded slots.
func (r Record) Filled() int {
	n := 0
	for _, v := range r.Slots {
		if v != "" {
			n++
		}
	}
	return n
}

func (r Record) with(o Option, at time.Time) Record {
	out := r
	out.Slots[o.index()] = at.Format(TimeLayout)
	if o == MorningIn {
		out.Date = at.Format(DateLayout)
	}
	return out
}

// Worked returns the time between each recorded in/out pair. A shift that
// is still open does not count.
func (r Record) Worked() time.Duration {
	var total time.Duration
	for _, in := range []Option{MorningIn, AfternoonIn} {
		start, err1 := time.Parse(TimeLayout, r.Get(in))
		end, err2 := time.Parse(TimeLayout, r.Get(in.Next()))
		if err1 != nil || err2 != nil || end.Before(start) {
			continue
		}
		total += end.Sub(start)
	}
	return total
}
