package availability

import "time"

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ApplyTodayCutoff drops slots at or before the current minute when date is today.
// For any other calendar day the slots are returned unchanged.
func ApplyTodayCutoff(slots []TimeOfDay, date, now time.Time) []TimeOfDay {
	if !SameDay(date, now) {
		return slots
	}
	current := FromTime(now.In(date.Location()))
	out := make([]TimeOfDay, 0, len(slots))
	for _, s := range slots {
		if s > current {
			out = append(out, s)
		}
	}
	return out
}
