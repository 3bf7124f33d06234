package db

import (
	"context"
	"time"

	"family-calendar/internal/models"

	"github.com/uptrace/bun"
)

func (d *DB) CountSpecialDays(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().Model((*models.SpecialDay)(nil)).Count(ctx)
}

// InsertSpecialDays writes all rows in one statement.
func (d *DB) InsertSpecialDays(ctx context.Context, days []models.SpecialDay) error {
	if len(days) == 0 {
		return nil
	}
	_, err := d.Bun.NewInsert().Model(&days).Exec(ctx)
	return err
}

func (d *DB) ListSpecialDays(ctx context.Context) ([]models.SpecialDay, error) {
	days := make([]models.SpecialDay, 0)
	err := d.Bun.NewSelect().
		Model(&days).
		OrderExpr("? ASC", bun.Ident("start")).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return days, nil
}

// ListSpecialDaysBetween returns special days overlapping [from, to].
func (d *DB) ListSpecialDaysBetween(ctx context.Context, from, to time.Time) ([]models.SpecialDay, error) {
	days := make([]models.SpecialDay, 0)
	err := d.Bun.NewSelect().
		Model(&days).
		Where("? >= ?", bun.Ident("end"), from.UTC()).
		Where("? <= ?", bun.Ident("start"), to.UTC()).
		OrderExpr("? ASC", bun.Ident("start")).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return days, nil
}
