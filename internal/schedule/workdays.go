package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

var rruleWeekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}

// ParseWorkdays parses the days on which auto clock-out is armed. It accepts
// "every day", "weekdays", "weekends", "every <weekday>" and raw RRULEs
// ("FREQ=WEEKLY;BYDAY=MO,WE"). An empty string means every day and returns nil.
func ParseWorkdays(s string) (*rrule.RRule, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if strings.HasPrefix(s, "freq=") || strings.HasPrefix(s, "rrule:") {
		raw := strings.TrimPrefix(strings.ToUpper(s), "RRULE:")
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return r, nil
	}

	switch s {
	case "", "every day", "daily":
		return nil, nil
	case "every weekday", "weekdays":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		})
	case "every weekend", "weekends":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		})
	}

	if wd, ok := rruleWeekdays[strings.TrimPrefix(s, "every ")]; ok {
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{wd},
		})
	}

	return nil, fmt.Errorf("unrecognized workdays %q", s)
}

// IsWorkday reports whether r has an occurrence on day's calendar date. A nil
// rule matches every day.
func IsWorkday(r *rrule.RRule, day time.Time) bool {
	if r == nil {
		return true
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Second)

	// Unbounded rules get DTSTART at the day itself so Between covers it.
	opts := r.OrigOptions
	if opts.Dtstart.IsZero() {
		opts.Dtstart = start
	}
	anchored, err := rrule.NewRRule(opts)
	if err != nil {
		return false
	}
	return len(anchored.Between(start, end, true)) > 0
}
