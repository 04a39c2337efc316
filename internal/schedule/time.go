package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a clock time without a date component.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// String returns the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the time of day on the calendar day of d.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, d.Location())
}

var (
	// 5:30pm, 5.30pm, 5pm
	time12h = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)$`)
	// 17:30, 17.30
	time24h = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)
)

// ParseTimeOfDay parses "5:30pm", "5.30pm", "5pm", "17:30" or "17.30".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if m := time12h.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, fmt.Errorf("hour %d out of range for 12-hour format", hour)
		}
		if minute > 59 {
			return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
		}
		hour %= 12
		if m[3] == "pm" {
			hour += 12
		}
		return TimeOfDay{Hour: hour, Minute: minute}, nil
	}

	if m := time24h.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 {
			return TimeOfDay{}, fmt.Errorf("hour %d out of range", hour)
		}
		if minute > 59 {
			return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
		}
		return TimeOfDay{Hour: hour, Minute: minute}, nil
	}

	return TimeOfDay{}, fmt.Errorf("unrecognized time format %q", s)
}
