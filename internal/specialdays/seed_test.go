package specialdays_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"family-calendar/internal/models"
	"family-calendar/internal/specialdays"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CountSpecialDays(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) InsertSpecialDays(ctx context.Context, days []models.SpecialDay) error {
	args := m.Called(ctx, days)
	return args.Error(0)
}

func TestSeedEmptyStore(t *testing.T) {
	store := new(MockStore)
	ctx := context.Background()
	days := specialdays.Catalog("Niedersachsen", 2026, time.UTC)

	store.On("CountSpecialDays", ctx).Return(0, nil)
	store.On("InsertSpecialDays", ctx, days).Return(nil)

	inserted, err := specialdays.Seed(ctx, store, days)
	require.NoError(t, err)
	assert.Equal(t, 17, inserted)
	store.AssertExpectations(t)
}

func TestSeedIsNoOpWhenPopulated(t *testing.T) {
	store := new(MockStore)
	ctx := context.Background()

	store.On("CountSpecialDays", ctx).Return(17, nil)

	inserted, err := specialdays.Seed(ctx, store, specialdays.Catalog("Niedersachsen", 2026, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	store.AssertNotCalled(t, "InsertSpecialDays", mock.Anything, mock.Anything)
}

func TestSeedRejectsInvertedInterval(t *testing.T) {
	store := new(MockStore)
	ctx := context.Background()
	day := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	store.On("CountSpecialDays", ctx).Return(0, nil)

	_, err := specialdays.Seed(ctx, store, []models.SpecialDay{
		{Kind: models.KindHoliday, Title: "kaputt", Start: day, End: day},
	})
	assert.ErrorIs(t, err, specialdays.ErrInvalidSpecialDay)
	store.AssertNotCalled(t, "InsertSpecialDays", mock.Anything, mock.Anything)
}

func TestSeedPropagatesCountFailure(t *testing.T) {
	store := new(MockStore)
	ctx := context.Background()

	store.On("CountSpecialDays", ctx).Return(0, errors.New("disk I/O error"))

	_, err := specialdays.Seed(ctx, store, nil)
	assert.Error(t, err)
	store.AssertNotCalled(t, "InsertSpecialDays", mock.Anything, mock.Anything)
}

func TestCatalogEndIsExclusive(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	for _, entry := range specialdays.Niedersachsen2026 {
		day := entry.SpecialDay(berlin)
		want := time.Date(entry.Last.Year, entry.Last.Month, entry.Last.Day+1, 0, 0, 0, 0, berlin)
		assert.True(t, day.End.Equal(want), "%s: end %s, want %s", entry.Title, day.End, want)
		assert.True(t, day.End.After(day.Start), entry.Title)
		assert.NoError(t, specialdays.Validate(day))
	}
}

func TestCatalogSingleDayHoliday(t *testing.T) {
	days := specialdays.Catalog("Niedersachsen", 2026, time.UTC)
	require.NotEmpty(t, days)

	var newYear models.SpecialDay
	for _, day := range days {
		if day.Title == "Neujahr" {
			newYear = day
		}
	}
	assert.Equal(t, models.KindHoliday, newYear.Kind)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), newYear.Start)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), newYear.End)
}

func TestCatalogCounts(t *testing.T) {
	var holidays, breaks int
	for _, entry := range specialdays.Niedersachsen2026 {
		switch entry.Kind {
		case models.KindHoliday:
			holidays++
		case models.KindSchoolBreak:
			breaks++
		}
	}
	assert.Equal(t, 10, holidays)
	assert.Equal(t, 7, breaks)
	assert.Nil(t, specialdays.Catalog("Bayern", 2026, time.UTC))
}

// easterSunday uses the Meeus/Jones/Butcher algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestMovableHolidaysMatchEaster(t *testing.T) {
	easter := easterSunday(2026)
	want := map[string]time.Time{
		"Karfreitag":          easter.AddDate(0, 0, -2),
		"Ostermontag":         easter.AddDate(0, 0, 1),
		"Christi Himmelfahrt": easter.AddDate(0, 0, 39),
		"Pfingstmontag":       easter.AddDate(0, 0, 50),
	}

	for _, day := range specialdays.Catalog("Niedersachsen", 2026, time.UTC) {
		if expected, ok := want[day.Title]; ok {
			assert.Equal(t, expected, day.Start, day.Title)
			delete(want, day.Title)
		}
	}
	assert.Empty(t, want)
}
