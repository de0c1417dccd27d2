package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aviiiiral/eventcalendarr/internal/models"
	"github.com/aviiiiral/eventcalendarr/internal/store"
)

// Scope selects whether a mutation against an expanded occurrence
// applies to that single instance or to the whole recurring series.
type Scope string

const (
	ScopeInstance Scope = "instance"
	ScopeSeries   Scope = "series"
)

var (
	// ErrConflict signals a detected schedule overlap. It is advisory:
	// retrying the same call with proceed set commits the mutation.
	ErrConflict = errors.New("schedule conflict with another event")

	// ErrTemplateNotFound means the recurring template behind an
	// instance no longer exists; the mutation is aborted whole.
	ErrTemplateNotFound = errors.New("original recurring event not found")

	ErrUnknownScope = errors.New("unknown resolution scope")
)

// Resolver translates mutations against displayed instances into event
// store operations. The caller's decisions arrive as explicit
// parameters (scope, proceed) rather than interactive prompts.
type Resolver struct {
	store *store.EventStore
}

func NewResolver(eventStore *store.EventStore) *Resolver {
	return &Resolver{store: eventStore}
}

// ResolveEdit applies edited fields to the event behind an instance.
//
// For a recurring instance with scope "instance", the occurrence date is
// added to the template's skip list and a standalone event carrying the
// edited fields is added, so the original occurrence does not reappear
// on the next expansion. With scope "series" the edits land on the
// template itself, ID unchanged.
//
// A conflict against the expanded set aborts with ErrConflict unless
// proceed is set; nothing is written on abort.
func (resolver *Resolver) ResolveEdit(ctx context.Context, instance models.Instance, edited models.Event, scope Scope, proceed bool) (models.Event, error) {
	if !instance.IsRecurring {
		edited.ID = instance.ID
		edited.Recurrence = nil
		if err := resolver.checkConflict(edited, proceed); err != nil {
			return models.Event{}, err
		}
		if err := resolver.store.Update(ctx, edited); err != nil {
			return models.Event{}, fmt.Errorf("updating event: %w", err)
		}
		return edited, nil
	}

	switch scope {
	case ScopeInstance:
		template, found := resolver.store.FindByID(instance.OriginalEventID)
		if !found {
			return models.Event{}, ErrTemplateNotFound
		}

		detached := edited
		detached.ID = ""
		detached.Recurrence = nil
		detached.SkipDates = nil
		template.SkipDates = append(template.SkipDates, instance.Start().Format(models.DateLayout))

		// Check against the set as it will look after the occurrence is
		// excluded, so the detached event never conflicts with the
		// occurrence it replaces.
		if err := checkConflictIn(prospective(resolver.store.List(), template), detached, proceed); err != nil {
			return models.Event{}, err
		}

		if err := resolver.store.Update(ctx, template); err != nil {
			return models.Event{}, fmt.Errorf("excluding occurrence: %w", err)
		}
		added, err := resolver.store.Add(ctx, detached)
		if err != nil {
			return models.Event{}, fmt.Errorf("adding detached event: %w", err)
		}
		return added, nil

	case ScopeSeries:
		template, found := resolver.store.FindByID(instance.OriginalEventID)
		if !found {
			return models.Event{}, ErrTemplateNotFound
		}

		template.Title = edited.Title
		template.Description = edited.Description
		template.Color = edited.Color
		template.Date = edited.Date
		template.EndTime = edited.EndTime
		template.Recurrence = edited.Recurrence
		if err := resolver.checkConflict(template, proceed); err != nil {
			return models.Event{}, err
		}
		if err := resolver.store.Update(ctx, template); err != nil {
			return models.Event{}, fmt.Errorf("updating template: %w", err)
		}
		return template, nil

	default:
		return models.Event{}, ErrUnknownScope
	}
}

// ResolveDelete removes an occurrence. Scope "instance" excludes just
// that date from future expansions; scope "series" deletes the template
// outright. Non-recurring instances delete the stored event directly.
func (resolver *Resolver) ResolveDelete(ctx context.Context, instance models.Instance, scope Scope) error {
	if !instance.IsRecurring {
		return resolver.store.Delete(ctx, instance.ID)
	}

	switch scope {
	case ScopeInstance:
		template, found := resolver.store.FindByID(instance.OriginalEventID)
		if !found {
			return ErrTemplateNotFound
		}
		template.SkipDates = append(template.SkipDates, instance.Start().Format(models.DateLayout))
		if err := resolver.store.Update(ctx, template); err != nil {
			return fmt.Errorf("excluding occurrence: %w", err)
		}
		return nil

	case ScopeSeries:
		if _, found := resolver.store.FindByID(instance.OriginalEventID); !found {
			return ErrTemplateNotFound
		}
		return resolver.store.Delete(ctx, instance.OriginalEventID)

	default:
		return ErrUnknownScope
	}
}

// MoveInstance repositions an occurrence onto the target day, keeping
// its time of day. For a series-scope move the template's anchor moves
// instead, keeping the anchor's time of day.
func (resolver *Resolver) MoveInstance(ctx context.Context, instance models.Instance, targetDay time.Time, scope Scope, proceed bool) (models.Event, error) {
	if !instance.IsRecurring {
		moved := instance.Event
		retime(&moved, targetDay)
		if err := resolver.checkConflict(moved, proceed); err != nil {
			return models.Event{}, err
		}
		if err := resolver.store.Update(ctx, moved); err != nil {
			return models.Event{}, fmt.Errorf("moving event: %w", err)
		}
		return moved, nil
	}

	switch scope {
	case ScopeInstance:
		moved := instance.Event
		retime(&moved, targetDay)
		return resolver.ResolveEdit(ctx, instance, moved, ScopeInstance, proceed)

	case ScopeSeries:
		template, found := resolver.store.FindByID(instance.OriginalEventID)
		if !found {
			return models.Event{}, ErrTemplateNotFound
		}
		moved := template
		retime(&moved, targetDay)
		return resolver.ResolveEdit(ctx, instance, moved, ScopeSeries, proceed)

	default:
		return models.Event{}, ErrUnknownScope
	}
}

// checkConflict runs advisory conflict detection against the expanded
// set for every month the candidate touches.
func (resolver *Resolver) checkConflict(candidate models.Event, proceed bool) error {
	return checkConflictIn(resolver.store.List(), candidate, proceed)
}

func checkConflictIn(events []models.Event, candidate models.Event, proceed bool) error {
	if proceed {
		return nil
	}
	if DetectConflict(events, candidate) {
		return ErrConflict
	}
	return nil
}

// prospective returns the event list with the updated event swapped in.
func prospective(events []models.Event, updated models.Event) []models.Event {
	for i := range events {
		if events[i].ID == updated.ID {
			events[i] = updated
		}
	}
	return events
}

// retime moves an event's start onto the target day, preserving its
// time of day and shifting the end by the same amount so the occupied
// interval keeps its length.
func retime(event *models.Event, targetDay time.Time) {
	start := event.Start()
	moved := time.Date(targetDay.Year(), targetDay.Month(), targetDay.Day(),
		start.Hour(), start.Minute(), start.Second(), 0, start.Location())
	if event.EndTime != nil {
		end := models.NewLocalTime(event.EndTime.Add(moved.Sub(start)))
		event.EndTime = &end
	}
	event.Date = models.NewLocalTime(moved)
}
