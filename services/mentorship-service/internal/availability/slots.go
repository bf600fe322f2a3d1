package availability

import (
	"slices"
	"time"
)

// DefaultStep is the booking granularity used when no other step is configured.
const DefaultStep = 30 * time.Minute

// GenerateSlots returns slot starts in the half-open window [start, end), stepping by step.
//
// An inverted or empty window, or a non-positive step, yields no slots.
func GenerateSlots(start, end TimeOfDay, step time.Duration) []TimeOfDay {
	stepMins := int(step / time.Minute)
	if stepMins <= 0 {
		return nil
	}
	if !start.Valid() || !end.Valid() || start >= end {
		return nil
	}

	slots := make([]TimeOfDay, 0, (int(end-start)+stepMins-1)/stepMins)
	for t := start; t < end; t += TimeOfDay(stepMins) {
		slots = append(slots, t)
	}
	return slots
}

// Normalize removes duplicate slots and sorts ascending. The input is not modified.
func Normalize(slots []TimeOfDay) []TimeOfDay {
	if len(slots) == 0 {
		return nil
	}
	out := slices.Clone(slots)
	slices.Sort(out)
	return slices.Compact(out)
}
