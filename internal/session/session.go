package session

import (
	"context"
	"errors"
	"time"

	"family-calendar/internal/models"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Draft is the state of the manual entry form.
type Draft struct {
	Title     string           `json:"title"`
	Owner     models.Owner     `json:"owner"`
	StartDate models.Date      `json:"start_date"`
	StartTime models.ClockTime `json:"start_time"`
	EndDate   models.Date      `json:"end_date"`
	EndTime   models.ClockTime `json:"end_time"`
	Notes     string           `json:"notes"`
}

// NewDraft returns the empty form: everyone, January 1st, 09:00 to 10:00.
func NewDraft(targetYear int) Draft {
	first := models.NewDate(targetYear, time.January, 1)
	return Draft{
		Owner:     models.OwnerAll,
		StartDate: first,
		StartTime: models.NewClockTime(9, 0),
		EndDate:   first,
		EndTime:   models.NewClockTime(10, 0),
	}
}

// Session is the per-browser context handed to handlers.
type Session struct {
	ID            string    `json:"id"`
	TargetYear    int       `json:"target_year"`
	Authenticated bool      `json:"authenticated"`
	Draft         Draft     `json:"draft"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewSession(targetYear int) *Session {
	return &Session{
		ID:         uuid.New().String(),
		TargetYear: targetYear,
		Draft:      NewDraft(targetYear),
		CreatedAt:  time.Now().UTC(),
	}
}

func (s *Session) Login() {
	s.Authenticated = true
}

// Reset is the logout transition back to the initial values.
func (s *Session) Reset() {
	s.Authenticated = false
	s.Draft = NewDraft(s.TargetYear)
}

// ApplySuggestion overwrites the draft with an intake suggestion. An empty
// suggested title keeps whatever title the user already typed.
func (s *Session) ApplySuggestion(sug models.Suggestion) {
	if sug.Title != "" {
		s.Draft.Title = sug.Title
	}
	s.Draft.StartDate = sug.StartDate
	s.Draft.StartTime = sug.StartTime
	s.Draft.EndDate = sug.EndDate
	s.Draft.EndTime = sug.EndTime
	s.Draft.Notes = sug.Notes
}

// ClearDraft resets the form after a successful save.
func (s *Session) ClearDraft() {
	s.Draft = NewDraft(s.TargetYear)
}

// Store persists sessions between requests.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type contextKey string

const sessionKey contextKey = "session"

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}
