package db

import (
	"context"
	"time"

	"family-calendar/internal/models"

	"github.com/uptrace/bun"
)

// DB is the bun-backed store for events and special days.
type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateEvent(ctx context.Context, event *models.Event) error {
	_, err := d.Bun.NewInsert().Model(event).Exec(ctx)
	return err
}

func (d *DB) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns all events in storage order.
func (d *DB) ListEvents(ctx context.Context) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := d.Bun.NewSelect().
		Model(&events).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventsBetween returns events overlapping [from, to].
func (d *DB) ListEventsBetween(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := d.Bun.NewSelect().
		Model(&events).
		Where("? >= ?", bun.Ident("end"), from.UTC()).
		Where("? <= ?", bun.Ident("start"), to.UTC()).
		OrderExpr("? ASC", bun.Ident("start")).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteEvent removes one event and reports whether it existed.
func (d *DB) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	res, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (d *DB) CountEvents(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().Model((*models.Event)(nil)).Count(ctx)
}
