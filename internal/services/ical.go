package services

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/aviiiiral/eventcalendarr/internal/models"
)

var rruleWeekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}

// ExportICal renders the event list as an iCalendar document. Recurring
// templates carry an RRULE line and EXDATEs for their skip dates.
func ExportICal(events []models.Event, calendarName string) string {
	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)
	calendar.SetProductId("-//eventcalendarr//EN")
	calendar.SetXWRCalName(calendarName)

	for _, event := range events {
		ve := calendar.AddEvent(event.ID)
		ve.SetSummary(event.Title)
		if event.Description != "" {
			ve.SetDescription(event.Description)
		}
		ve.SetProperty(ical.ComponentPropertyCategories, string(event.Color))
		ve.SetProperty(ical.ComponentPropertyDtStart, event.Start().Format(icalTimeLayout))
		ve.SetProperty(ical.ComponentPropertyDtEnd, event.End().Format(icalTimeLayout))

		if event.Recurrence != nil {
			if line, err := recurrenceToRRule(*event.Recurrence); err == nil {
				ve.SetProperty(ical.ComponentPropertyRrule, line)
			}
			for _, skipped := range event.SkipDates {
				if date, err := time.ParseInLocation(models.DateLayout, skipped, time.Local); err == nil {
					start := event.Start()
					exdate := time.Date(date.Year(), date.Month(), date.Day(),
						start.Hour(), start.Minute(), start.Second(), 0, start.Location())
					ve.AddProperty(ical.ComponentPropertyExdate, exdate.Format(icalTimeLayout))
				}
			}
		}
	}

	return calendar.Serialize()
}

// icalTimeLayout is the floating (timezone-naive) iCalendar timestamp
// form, matching the core's wall-clock semantics.
const icalTimeLayout = "20060102T150405"

// recurrenceToRRule translates a recurrence rule into an RRULE value.
func recurrenceToRRule(rule models.Recurrence) (string, error) {
	option := rrule.ROption{}

	switch rule.Type {
	case models.RecurrenceDaily:
		option.Freq = rrule.DAILY

	case models.RecurrenceWeekly:
		option.Freq = rrule.WEEKLY
		for _, day := range rule.DaysOfWeek {
			if weekday, ok := rruleWeekdays[strings.ToLower(day)]; ok {
				option.Byweekday = append(option.Byweekday, weekday)
			}
		}

	case models.RecurrenceMonthly:
		option.Freq = rrule.MONTHLY

	case models.RecurrenceCustom:
		if rule.Interval > 0 {
			option.Interval = rule.Interval
		}
		switch rule.IntervalType {
		case models.IntervalWeeks:
			option.Freq = rrule.WEEKLY
		case models.IntervalMonths:
			option.Freq = rrule.MONTHLY
		default:
			option.Freq = rrule.DAILY
		}

	default:
		return "", fmt.Errorf("unsupported recurrence type %q", rule.Type)
	}

	r, err := rrule.NewRRule(option)
	if err != nil {
		return "", fmt.Errorf("building rrule: %w", err)
	}
	return r.String(), nil
}
