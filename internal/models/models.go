package models

import (
	"encoding/json"
	"strings"
	"time"
)

// TimeLayout is the wire and storage format for all event timestamps:
// ISO-8601 local wall-clock time with no timezone offset.
const TimeLayout = "2006-01-02T15:04:05"

// DateLayout keys occurrence dates in skip lists and instance IDs.
const DateLayout = "2006-01-02"

type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
)

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceCustom  RecurrenceType = "custom"
)

type IntervalUnit string

const (
	IntervalDays   IntervalUnit = "days"
	IntervalWeeks  IntervalUnit = "weeks"
	IntervalMonths IntervalUnit = "months"
)

// LocalTime is a timezone-naive timestamp. It marshals as TimeLayout and
// recovers from unparsable input by falling back to the current time.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t}
}

// ParseLocalTime parses a TimeLayout timestamp, falling back to the
// current time when the input is malformed.
func ParseLocalTime(value string) LocalTime {
	parsed, err := time.ParseInLocation(TimeLayout, value, time.Local)
	if err != nil {
		return LocalTime{Time: time.Now()}
	}
	return LocalTime{Time: parsed}
}

func (t LocalTime) String() string {
	return t.Format(TimeLayout)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimeLayout))
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*t = ParseLocalTime(value)
	return nil
}

// Recurrence describes how a template repeats. Fields that are not
// meaningful for the chosen type are cleared by Normalize.
type Recurrence struct {
	Type         RecurrenceType `json:"type"`
	DaysOfWeek   []string       `json:"daysOfWeek,omitempty"`
	Interval     int            `json:"interval,omitempty"`
	IntervalType IntervalUnit   `json:"intervalType,omitempty"`
}

// Normalize clears rule fields that do not apply to the rule's type so
// stale values never survive a type change.
func (r *Recurrence) Normalize() {
	if r == nil {
		return
	}
	if r.Type != RecurrenceWeekly {
		r.DaysOfWeek = nil
	} else {
		for i, day := range r.DaysOfWeek {
			r.DaysOfWeek[i] = strings.ToLower(day)
		}
	}
	if r.Type != RecurrenceCustom {
		r.Interval = 0
		r.IntervalType = ""
	} else {
		if r.Interval <= 0 {
			r.Interval = 1
		}
		if r.IntervalType == "" {
			r.IntervalType = IntervalDays
		}
	}
}

// Event is either a standalone event (nil Recurrence) or a recurring
// template from which instances are expanded.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Date        LocalTime   `json:"date"`
	EndTime     *LocalTime  `json:"endTime,omitempty"`
	Description string      `json:"description,omitempty"`
	Color       Color       `json:"color"`
	Recurrence  *Recurrence `json:"recurrence,omitempty"`

	// SkipDates lists occurrence dates (DateLayout) excluded from
	// expansion, recording instance-scope edits and deletes.
	SkipDates []string `json:"skipDates,omitempty"`
}

// IsTemplate reports whether the event carries a recurrence rule.
func (e Event) IsTemplate() bool {
	return e.Recurrence != nil
}

// Start returns the event's start timestamp.
func (e Event) Start() time.Time {
	return e.Date.Time
}

// End returns the end of the event's occupied interval: EndTime when
// set, otherwise 23:59:59 of the start day.
func (e Event) End() time.Time {
	if e.EndTime != nil {
		return e.EndTime.Time
	}
	start := e.Date.Time
	return time.Date(start.Year(), start.Month(), start.Day(), 23, 59, 59, 0, start.Location())
}

// SkipsDate reports whether the given occurrence date is excluded.
func (e Event) SkipsDate(date time.Time) bool {
	key := date.Format(DateLayout)
	for _, skipped := range e.SkipDates {
		if skipped == key {
			return true
		}
	}
	return false
}

// Instance is a materialized occurrence of an event for one concrete
// date. Instances are derived on every expansion and never persisted.
type Instance struct {
	Event

	InstanceID      string `json:"instanceId,omitempty"`
	OriginalEventID string `json:"originalEventId,omitempty"`
	IsRecurring     bool   `json:"isRecurring"`
}

// InstanceID derives the stable identifier for an occurrence of the
// given template on the given date.
func InstanceID(templateID string, occurrence time.Time) string {
	return templateID + "-" + occurrence.Format(DateLayout)
}
