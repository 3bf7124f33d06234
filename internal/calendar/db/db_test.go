package db_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"family-calendar/internal/calendar/db"
	"family-calendar/internal/database"
	"family-calendar/internal/database/migrations"
	"family-calendar/internal/logger"
	"family-calendar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	t.Helper()
	ctx := context.Background()

	bunDB, err := database.Open(ctx, filepath.Join(t.TempDir(), "calendar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { bunDB.Close() })

	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions(), logger.NewWithWriter(io.Discard))
	require.NoError(t, runner.RunMigrations())
	t.Cleanup(func() { runner.Close() })

	return &db.DB{Bun: bunDB}, bunDB
}

func at(day, hour int) time.Time {
	return time.Date(2026, time.January, day, hour, 0, 0, 0, time.UTC)
}

func TestCreateAndListEvents(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	notes := "Impfpass mitnehmen"
	event := &models.Event{
		Title: "Kinderarzt",
		Owner: models.OwnerKind1,
		Start: at(12, 15),
		End:   at(12, 16),
		Notes: &notes,
	}

	err := store.CreateEvent(ctx, event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
	assert.Equal(t, "Kinderarzt", events[0].Title)
	assert.Equal(t, models.OwnerKind1, events[0].Owner)
	assert.True(t, events[0].Start.Equal(at(12, 15)))
	assert.True(t, events[0].End.Equal(at(12, 16)))
	require.NotNil(t, events[0].Notes)
	assert.Equal(t, notes, *events[0].Notes)

	fetched, err := store.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kinderarzt", fetched.Title)
}

func TestCreateEventWithoutNotes(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	event := &models.Event{Title: "Elternabend", Owner: models.OwnerAll, Start: at(20, 19), End: at(20, 21)}
	require.NoError(t, store.CreateEvent(ctx, event))

	fetched, err := store.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Notes)
}

func TestDeleteEvent(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	keep := &models.Event{Title: "Schwimmen", Owner: models.OwnerKind2, Start: at(5, 16), End: at(5, 17)}
	drop := &models.Event{Title: "Zahnarzt", Owner: models.OwnerPapa, Start: at(6, 8), End: at(6, 9)}
	require.NoError(t, store.CreateEvent(ctx, keep))
	require.NoError(t, store.CreateEvent(ctx, drop))

	existed, err := store.DeleteEvent(ctx, drop.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = store.GetEventByID(ctx, drop.ID)
	assert.Error(t, err)

	count, err := store.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteMissingEventLeavesOthersUntouched(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	event := &models.Event{Title: "Fußball", Owner: models.OwnerKind1, Start: at(7, 17), End: at(7, 18)}
	require.NoError(t, store.CreateEvent(ctx, event))

	existed, err := store.DeleteEvent(ctx, event.ID+100)
	require.NoError(t, err)
	assert.False(t, existed)

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Fußball", events[0].Title)
}

func TestListEventsBetween(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	for _, e := range []*models.Event{
		{Title: "vorher", Owner: models.OwnerAll, Start: at(1, 9), End: at(1, 10)},
		{Title: "drin", Owner: models.OwnerAll, Start: at(10, 9), End: at(10, 10)},
		{Title: "überlappend", Owner: models.OwnerAll, Start: at(8, 9), End: at(9, 10)},
		{Title: "danach", Owner: models.OwnerAll, Start: at(25, 9), End: at(25, 10)},
	} {
		require.NoError(t, store.CreateEvent(ctx, e))
	}

	events, err := store.ListEventsBetween(ctx, at(9, 0), at(20, 0))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "überlappend", events[0].Title)
	assert.Equal(t, "drin", events[1].Title)
}

func TestSpecialDays(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	count, err := store.CountSpecialDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	days := []models.SpecialDay{
		{Kind: models.KindHoliday, Title: "Neujahr", Start: at(1, 0), End: at(2, 0)},
		{Kind: models.KindSchoolBreak, Title: "Ferien", Start: at(10, 0), End: at(15, 0)},
	}
	require.NoError(t, store.InsertSpecialDays(ctx, days))

	count, err = store.CountSpecialDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := store.ListSpecialDays(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Neujahr", all[0].Title)
	assert.Equal(t, models.KindHoliday, all[0].Kind)
	assert.True(t, all[0].End.Equal(at(2, 0)))

	window, err := store.ListSpecialDaysBetween(ctx, at(12, 0), at(13, 0))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "Ferien", window[0].Title)
}
