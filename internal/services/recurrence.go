package services

import (
	"time"

	"github.com/aviiiiral/eventcalendarr/internal/models"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Expand materializes the occurrences of an event that fall inside
// [windowStart, windowEnd]. Standalone events pass through as a single
// instance; templates are walked from their anchor date, one bounded
// step at a time, so expansion always terminates. Occurrence dates on
// the template's skip list are not emitted.
//
// Expansion is pure: the same template and window always produce the
// same instances, and instance IDs are stable across windows.
func Expand(event models.Event, windowStart, windowEnd time.Time) []models.Instance {
	if !event.IsTemplate() {
		if event.Start().Before(windowStart) || event.Start().After(windowEnd) {
			return nil
		}
		return []models.Instance{{Event: event}}
	}

	var instances []models.Instance
	cursor := event.Start()

	for !cursor.After(windowEnd) {
		if !cursor.Before(windowStart) && !event.SkipsDate(cursor) && matchesRule(cursor, *event.Recurrence) {
			instances = append(instances, makeInstance(event, cursor))
		}
		cursor = advance(cursor, *event.Recurrence)
	}

	return instances
}

// matchesRule filters out an anchor date that does not satisfy a weekly
// rule's weekday set. Every advanced cursor position satisfies the rule
// by construction; only the anchor itself can miss.
func matchesRule(cursor time.Time, rule models.Recurrence) bool {
	if rule.Type != models.RecurrenceWeekly || len(rule.DaysOfWeek) == 0 {
		return true
	}
	recognized := false
	for _, day := range rule.DaysOfWeek {
		if weekday, ok := weekdayNames[day]; ok {
			recognized = true
			if cursor.Weekday() == weekday {
				return true
			}
		}
	}
	// A set with no recognized day names degrades to a plain weekly rule.
	return !recognized
}

// ExpandAll expands every event in the list over the window, templates
// and standalone events alike, ordered by start time within each event.
func ExpandAll(events []models.Event, windowStart, windowEnd time.Time) []models.Instance {
	var instances []models.Instance
	for _, event := range events {
		instances = append(instances, Expand(event, windowStart, windowEnd)...)
	}
	return instances
}

func makeInstance(template models.Event, occurrence time.Time) models.Instance {
	instance := models.Instance{
		Event:           template,
		InstanceID:      models.InstanceID(template.ID, occurrence),
		OriginalEventID: template.ID,
		IsRecurring:     true,
	}
	instance.Date = models.NewLocalTime(occurrence)
	if template.EndTime != nil {
		duration := template.EndTime.Sub(template.Start())
		end := models.NewLocalTime(occurrence.Add(duration))
		instance.EndTime = &end
	}
	return instance
}

// advance moves the cursor one rule step forward. Every branch moves
// strictly forward in time; an unrecognized rule type advances daily so
// a bad rule can never loop forever.
func advance(cursor time.Time, rule models.Recurrence) time.Time {
	switch rule.Type {
	case models.RecurrenceDaily:
		return cursor.AddDate(0, 0, 1)

	case models.RecurrenceWeekly:
		if len(rule.DaysOfWeek) > 0 {
			return nextMatchingWeekday(cursor, rule.DaysOfWeek)
		}
		return cursor.AddDate(0, 0, 7)

	case models.RecurrenceMonthly:
		return cursor.AddDate(0, 1, 0)

	case models.RecurrenceCustom:
		interval := rule.Interval
		if interval <= 0 {
			interval = 1
		}
		switch rule.IntervalType {
		case models.IntervalDays:
			return cursor.AddDate(0, 0, interval)
		case models.IntervalWeeks:
			return cursor.AddDate(0, 0, 7*interval)
		case models.IntervalMonths:
			return cursor.AddDate(0, interval, 0)
		default:
			return cursor.AddDate(0, 0, 1)
		}

	default:
		return cursor.AddDate(0, 0, 1)
	}
}

// nextMatchingWeekday scans forward from the cursor, at most a week, for
// the next date whose weekday is in the set. A set with no recognized
// day names falls back to a one-week step.
func nextMatchingWeekday(from time.Time, targetDays []string) time.Time {
	var targets []time.Weekday
	for _, day := range targetDays {
		if weekday, ok := weekdayNames[day]; ok {
			targets = append(targets, weekday)
		}
	}

	if len(targets) == 0 {
		return from.AddDate(0, 0, 7)
	}

	for offset := 1; offset <= 7; offset++ {
		candidate := from.AddDate(0, 0, offset)
		for _, target := range targets {
			if candidate.Weekday() == target {
				return candidate
			}
		}
	}

	return from.AddDate(0, 0, 7)
}
