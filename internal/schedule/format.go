package schedule

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Format12h renders t as "5:30 PM".
func Format12h(t time.Time) string {
	return t.Format("3:04 PM")
}

var dayNames = map[string]string{
	"MO": "monday", "TU": "tuesday", "WE": "wednesday", "TH": "thursday",
	"FR": "friday", "SA": "saturday", "SU": "sunday",
}

// FormatWorkdays describes a workday rule; nil reads as "every day".
func FormatWorkdays(r *rrule.RRule) string {
	if r == nil {
		return "every day"
	}

	opts := r.OrigOptions
	if opts.Freq == rrule.WEEKLY && opts.Interval <= 1 && len(opts.Byweekday) > 0 {
		codes := make([]string, len(opts.Byweekday))
		for i, wd := range opts.Byweekday {
			codes[i] = wd.String()
		}
		switch strings.Join(codes, ",") {
		case "MO,TU,WE,TH,FR":
			return "weekdays"
		case "SA,SU":
			return "weekends"
		}
		names := make([]string, len(codes))
		for i, c := range codes {
			names[i] = dayNames[c]
		}
		return "every " + strings.Join(names, ", ")
	}
	if opts.Freq == rrule.DAILY && opts.Interval <= 1 {
		return "every day"
	}
	return r.String()
}
