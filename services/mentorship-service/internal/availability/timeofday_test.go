package availability

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	valid := map[string]TimeOfDay{
		"00:00": 0,
		"09:30": 570,
		"23:59": 1439,
	}
	for in, want := range valid {
		got, err := ParseTimeOfDay(in)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseTimeOfDay(%q) = %d, want %d", in, got, want)
		}
		if got.String() != in {
			t.Fatalf("round trip %q -> %q", in, got.String())
		}
	}

	for _, in := range []string{"", "9:30", "09:3", "24:00", "12:60", "ab:cd", "09-30", " 09:30", "09:30:00"} {
		if _, err := ParseTimeOfDay(in); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Fatalf("ParseTimeOfDay(%q) expected ErrInvalidTimeFormat, got %v", in, err)
		}
	}
}

func TestTimeOfDayOn(t *testing.T) {
	date := time.Date(2026, 3, 2, 17, 45, 12, 0, time.UTC)
	got := MustParseTimeOfDay("08:15").On(date)
	want := time.Date(2026, 3, 2, 8, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if FromTime(date) != MustParseTimeOfDay("17:45") {
		t.Fatalf("FromTime truncates to the minute, got %s", FromTime(date))
	}
}

func TestStringsNeverNil(t *testing.T) {
	if got := Strings(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
