package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

var timeOfDayPattern = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// ValidTimeOfDay reports whether s matches hh:mm or hh:mm:ss.
func ValidTimeOfDay(s string) bool {
	return timeOfDayPattern.MatchString(s)
}

// NormalizeTimeOfDay validates a time-of-day filter and pads hh:mm to
// hh:mm:ss, the form events are stored in.
func NormalizeTimeOfDay(s string) (string, error) {
	if !timeOfDayPattern.MatchString(s) {
		return "", fmt.Errorf("invalid time format %q", s)
	}
	if len(strings.Split(s, ":")) == 2 {
		s += ":00"
	}
	return s, nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate accepts the date formats clients send for event dates.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
