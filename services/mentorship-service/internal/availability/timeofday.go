package availability

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when a value is not a zero-padded 24-hour HH:MM time.
var ErrInvalidTimeFormat = errors.New("invalid time format (want HH:MM)")

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock minute within a single day, in [0, 1439].
type TimeOfDay int

// ParseTimeOfDay accepts only the canonical "HH:MM" form (two digits each, 00:00..23:59).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeOfDay(h*60 + m), nil
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FromTime truncates t to the minute and drops the date.
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On places t on the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Strings renders slots in canonical HH:MM form. A nil input yields an empty, non-nil slice.
func Strings(slots []TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
