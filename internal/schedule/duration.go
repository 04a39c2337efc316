package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var offsetRe = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?$`)

// ParseOffset parses an auto clock-out delay such as "30m", "4h" or "4h30m".
// Zero and empty offsets are rejected.
func ParseOffset(s string) (time.Duration, error) {
	s = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty offset")
	}

	m := offsetRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid offset %q (expected e.g. 30m, 4h, 4h30m)", s)
	}

	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	d := time.Duration(hours)*time.Hour + time.Duration(mins)*time.Minute
	if d <= 0 {
		return 0, fmt.Errorf("offset must be positive")
	}
	return d, nil
}

// FormatOffset renders d as "4h 30m", "4h" or "30m".
func FormatOffset(d time.Duration) string {
	total := int(d / time.Minute)
	if total <= 0 {
		return "0m"
	}
	h, m := total/60, total%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
