package services

import (
	"strings"
	"testing"

	"github.com/aviiiiral/eventcalendarr/internal/models"
)

func TestExportICal(t *testing.T) {
	end := models.NewLocalTime(localDate(2024, 1, 3, 19, 0))
	events := []models.Event{
		{
			ID:    "e1",
			Title: "Dentist",
			Date:  models.NewLocalTime(localDate(2024, 1, 15, 10, 0)),
			Color: models.ColorRed,
		},
		{
			ID:      "t1",
			Title:   "Gym",
			Date:    models.NewLocalTime(localDate(2024, 1, 3, 18, 0)),
			EndTime: &end,
			Color:   models.ColorGreen,
			Recurrence: &models.Recurrence{
				Type:       models.RecurrenceWeekly,
				DaysOfWeek: []string{"wednesday", "friday"},
			},
			SkipDates: []string{"2024-01-10"},
		},
	}

	feed := ExportICal(events, "Test Calendar")

	for _, expected := range []string{
		"BEGIN:VCALENDAR",
		"X-WR-CALNAME:Test Calendar",
		"SUMMARY:Dentist",
		"SUMMARY:Gym",
		"DTSTART:20240103T180000",
		"RRULE:FREQ=WEEKLY;BYDAY=WE,FR",
		"EXDATE:20240110T180000",
		"END:VCALENDAR",
	} {
		if !strings.Contains(feed, expected) {
			t.Errorf("feed missing %q:\n%s", expected, feed)
		}
	}

	if strings.Count(feed, "RRULE") != 1 {
		t.Errorf("expected exactly one RRULE, feed:\n%s", feed)
	}
}

func TestRecurrenceToRRule(t *testing.T) {
	tests := []struct {
		name     string
		rule     models.Recurrence
		expected string
	}{
		{
			name:     "daily",
			rule:     models.Recurrence{Type: models.RecurrenceDaily},
			expected: "FREQ=DAILY",
		},
		{
			name:     "monthly",
			rule:     models.Recurrence{Type: models.RecurrenceMonthly},
			expected: "FREQ=MONTHLY",
		},
		{
			name:     "custom every 2 weeks",
			rule:     models.Recurrence{Type: models.RecurrenceCustom, Interval: 2, IntervalType: models.IntervalWeeks},
			expected: "FREQ=WEEKLY;INTERVAL=2",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			line, err := recurrenceToRRule(test.rule)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if line != test.expected {
				t.Errorf("expected %q, got %q", test.expected, line)
			}
		})
	}
}

func TestRecurrenceToRRule_UnknownType(t *testing.T) {
	if _, err := recurrenceToRRule(models.Recurrence{Type: "sometimes"}); err == nil {
		t.Error("expected an error for an unknown recurrence type")
	}
}
