package specialdays

import (
	"context"
	"errors"
	"fmt"

	"family-calendar/internal/models"
)

var ErrInvalidSpecialDay = errors.New("invalid special day")

type Store interface {
	CountSpecialDays(ctx context.Context) (int, error)
	InsertSpecialDays(ctx context.Context, days []models.SpecialDay) error
}

// Seed inserts days unless the store already holds any special day, and
// returns the number of inserted rows. The count guard assumes a single
// running process.
func Seed(ctx context.Context, store Store, days []models.SpecialDay) (int, error) {
	count, err := store.CountSpecialDays(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count special days: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, day := range days {
		if err := Validate(day); err != nil {
			return 0, err
		}
	}

	if err := store.InsertSpecialDays(ctx, days); err != nil {
		return 0, fmt.Errorf("failed to insert special days: %w", err)
	}
	return len(days), nil
}

// Validate checks kind, title and the exclusive-end interval.
func Validate(day models.SpecialDay) error {
	if !day.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSpecialDay, day.Kind)
	}
	if day.Title == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidSpecialDay)
	}
	if !day.End.After(day.Start) {
		return fmt.Errorf("%w: %s ends before it starts", ErrInvalidSpecialDay, day.Title)
	}
	return nil
}
