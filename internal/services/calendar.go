package services

import (
	"time"

	"github.com/aviiiiral/eventcalendarr/internal/models"
)

// MonthWindow returns the first and last instant of the anchor's month.
func MonthWindow(anchor time.Time) (time.Time, time.Time) {
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// CalendarDays returns the days of the calendar grid for the anchor's
// month: whole weeks from the Sunday on or before the 1st through the
// Saturday on or after the last day.
func CalendarDays(anchor time.Time) []time.Time {
	monthStart, monthEnd := MonthWindow(anchor)

	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	var days []time.Time
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		days = append(days, time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()))
	}
	return days
}

// ExpandMonth expands the full event list over the anchor's month.
func ExpandMonth(events []models.Event, anchor time.Time) []models.Instance {
	start, end := MonthWindow(anchor)
	return ExpandAll(events, start, end)
}

// EventsForDay filters the expanded instances down to those whose start
// falls within [day 00:00:00, day 23:59:59].
func EventsForDay(instances []models.Instance, day time.Time) []models.Instance {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())

	var matched []models.Instance
	for _, instance := range instances {
		start := instance.Start()
		if !start.Before(dayStart) && !start.After(dayEnd) {
			matched = append(matched, instance)
		}
	}
	return matched
}
