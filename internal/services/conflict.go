package services

import (
	"github.com/aviiiiral/eventcalendarr/internal/models"
)

// DetectConflict expands the event list across every month the
// candidate's occupied interval touches and reports whether the
// candidate overlaps any resulting instance. Expanding from the start
// month through the end month keeps intervals that cross a month
// boundary from slipping past next-month events.
func DetectConflict(events []models.Event, candidate models.Event) bool {
	windowStart, _ := MonthWindow(candidate.Start())
	_, windowEnd := MonthWindow(candidate.End())
	if windowEnd.Before(windowStart) {
		_, windowEnd = MonthWindow(candidate.Start())
	}
	return HasConflict(ExpandAll(events, windowStart, windowEnd), candidate)
}

// HasConflict reports whether the candidate's occupied interval overlaps
// any event in the expanded set. Intervals are closed on both ends, so
// touching endpoints count as overlap. Entries sharing the candidate's
// ID are skipped: editing an event never conflicts with itself or with
// its own expanded occurrences.
//
// Detection is advisory. Callers decide whether a conflict blocks the
// pending write or merely warns.
func HasConflict(existing []models.Instance, candidate models.Event) bool {
	candidateStart := candidate.Start()
	candidateEnd := candidate.End()

	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if !candidateStart.After(other.End()) && !candidateEnd.Before(other.Start()) {
			return true
		}
	}
	return false
}
