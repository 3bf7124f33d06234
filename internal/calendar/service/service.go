package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"family-calendar/internal/logger"
	"family-calendar/internal/models"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrEventNotFound = errors.New("event not found")
)

// User-facing validation messages.
const (
	MsgTitleRequired  = "Bitte Titel eingeben."
	MsgEndBeforeStart = "Ende muss nach Start liegen."
	MsgUnknownOwner   = "Unbekannte Person."
)

// ValidationError carries the message shown next to the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type EventDBLayer interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListEventsBetween(ctx context.Context, from, to time.Time) ([]models.Event, error)
	DeleteEvent(ctx context.Context, id int64) (bool, error)
	ListSpecialDays(ctx context.Context) ([]models.SpecialDay, error)
	ListSpecialDaysBetween(ctx context.Context, from, to time.Time) ([]models.SpecialDay, error)
}

// ChangePublisher is notified after every successful write.
type ChangePublisher interface {
	PublishEventChange(ctx context.Context, change models.EventChange) error
}

// Publishers notifies each publisher in order and returns the first error.
type Publishers []ChangePublisher

func (p Publishers) PublishEventChange(ctx context.Context, change models.EventChange) error {
	var first error
	for _, pub := range p {
		if err := pub.PublishEventChange(ctx, change); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type EventService struct {
	DB        EventDBLayer
	Publisher ChangePublisher
	Logger    *logger.Logger
	Location  *time.Location
}

func NewEventService(db EventDBLayer, publisher ChangePublisher, log *logger.Logger, loc *time.Location) *EventService {
	if loc == nil {
		loc = time.Local
	}
	return &EventService{DB: db, Publisher: publisher, Logger: log, Location: loc}
}

// EventInput is the submitted entry form.
type EventInput struct {
	Title string
	Owner models.Owner
	Start time.Time
	End   time.Time
	Notes string
}

func (in EventInput) validate() (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", &ValidationError{Field: "title", Message: MsgTitleRequired}
	}
	if !in.Owner.Valid() {
		return "", &ValidationError{Field: "owner", Message: MsgUnknownOwner}
	}
	if !in.End.After(in.Start) {
		return "", &ValidationError{Field: "end", Message: MsgEndBeforeStart}
	}
	return title, nil
}

// AddEvent validates the form and stores the event. Nothing is written when
// validation fails.
func (s *EventService) AddEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	title, err := in.validate()
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title: title,
		Owner: in.Owner,
		Start: in.Start,
		End:   in.End,
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		event.Notes = &notes
	}

	if err := s.DB.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.logf("Created event %d (%s) for %s", event.ID, event.Title, event.Owner)
	s.publish(ctx, models.NewEventChange(models.ChangeEventCreated, event.ID, event))
	return event, nil
}

// ListEvents returns all events ordered by start.
func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.DB.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	sortByStart(events)
	return events, nil
}

func (s *EventService) ListSpecialDays(ctx context.Context) ([]models.SpecialDay, error) {
	days, err := s.DB.ListSpecialDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list special days: %w", err)
	}
	return days, nil
}

// DeleteEvent removes one event. Other rows are never touched.
func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	existed, err := s.DB.DeleteEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	if !existed {
		return fmt.Errorf("event %d: %w", id, ErrEventNotFound)
	}
	s.logf("Deleted event %d", id)
	s.publish(ctx, models.NewEventChange(models.ChangeEventDeleted, id, nil))
	return nil
}

func (s *EventService) publish(ctx context.Context, change models.EventChange) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEventChange(ctx, change); err != nil && s.Logger != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("failed to publish %s for event %d: %v", change.Type, change.EventID, err))
	}
}

func (s *EventService) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.LogDatabase("WRITE", "events", fmt.Sprintf(format, args...))
	}
}

func sortByStart(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}
