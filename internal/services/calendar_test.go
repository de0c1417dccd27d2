package services

import (
	"testing"
	"time"

	"github.com/aviiiiral/eventcalendarr/internal/models"
)

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(localDate(2024, 2, 14, 12, 30))

	if !start.Equal(localDate(2024, 2, 1, 0, 0)) {
		t.Errorf("expected window start 2024-02-01T00:00, got %v", start)
	}
	expectedEnd := time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local)
	if !end.Equal(expectedEnd) {
		t.Errorf("expected window end %v, got %v", expectedEnd, end)
	}
}

func TestCalendarDays_CoversWholeWeeks(t *testing.T) {
	days := CalendarDays(localDate(2024, 1, 10, 0, 0))

	if len(days)%7 != 0 {
		t.Fatalf("expected a whole number of weeks, got %d days", len(days))
	}
	if days[0].Weekday() != time.Sunday {
		t.Errorf("expected grid to start on Sunday, got %v", days[0].Weekday())
	}
	if days[len(days)-1].Weekday() != time.Saturday {
		t.Errorf("expected grid to end on Saturday, got %v", days[len(days)-1].Weekday())
	}

	// January 2024 starts on a Monday and ends on a Wednesday: the grid
	// runs 2023-12-31 through 2024-02-03, five weeks.
	if len(days) != 35 {
		t.Errorf("expected 35 days for January 2024, got %d", len(days))
	}
	if !days[0].Equal(localDate(2023, 12, 31, 0, 0)) {
		t.Errorf("expected first grid day 2023-12-31, got %v", days[0])
	}
}

func TestEventsForDay(t *testing.T) {
	instances := asInstances(
		timedEvent("a", 10, 0, 11, 0),
		models.Event{
			ID:    "b",
			Title: "Next day",
			Date:  models.NewLocalTime(localDate(2024, 1, 2, 10, 0)),
		},
		models.Event{
			ID:    "c",
			Title: "End of day",
			Date:  models.NewLocalTime(time.Date(2024, 1, 1, 23, 59, 59, 0, time.Local)),
		},
	)

	matched := EventsForDay(instances, localDate(2024, 1, 1, 15, 0))
	if len(matched) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(matched))
	}
	if matched[0].ID != "a" || matched[1].ID != "c" {
		t.Errorf("expected instances a and c, got %s and %s", matched[0].ID, matched[1].ID)
	}
}

func TestExpandMonth(t *testing.T) {
	events := []models.Event{
		{
			ID:         "t1",
			Title:      "Standup",
			Date:       models.NewLocalTime(localDate(2024, 1, 1, 9, 0)),
			Recurrence: &models.Recurrence{Type: models.RecurrenceDaily},
		},
		{
			ID:    "e1",
			Title: "Dentist",
			Date:  models.NewLocalTime(localDate(2024, 1, 15, 14, 0)),
		},
		{
			ID:    "e2",
			Title: "Out of month",
			Date:  models.NewLocalTime(localDate(2024, 2, 1, 9, 0)),
		},
	}

	instances := ExpandMonth(events, localDate(2024, 1, 20, 0, 0))
	if len(instances) != 32 {
		t.Fatalf("expected 31 daily instances plus 1 standalone, got %d", len(instances))
	}
}
