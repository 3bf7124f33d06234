package display_test

import (
	"testing"
	"time"

	"family-calendar/internal/calendar/display"
	"family-calendar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEvents(t *testing.T) {
	events := []models.Event{
		{Title: "Zahnarzt", Owner: models.OwnerPapa, Start: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), End: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		{Title: "Ausflug", Owner: "Oma", Start: time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), End: time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC)},
	}

	items := display.Build(events, nil, time.UTC)
	require.Len(t, items, 2)

	assert.Equal(t, "Zahnarzt (Papa)", items[0].Title)
	assert.Equal(t, "#22c55e", items[0].BackgroundColor)
	assert.Equal(t, "#22c55e", items[0].BorderColor)
	assert.Equal(t, "2026-03-02T08:00:00Z", items[0].Start)
	assert.False(t, items[0].AllDay)
	assert.Empty(t, items[0].Display)

	assert.Equal(t, display.FallbackColor, items[1].BackgroundColor)
}

func TestBuildSpecialDays(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	specials := []models.SpecialDay{
		{Kind: models.KindHoliday, Title: "Neujahr", Start: time.Date(2026, 1, 1, 0, 0, 0, 0, berlin), End: time.Date(2026, 1, 2, 0, 0, 0, 0, berlin)},
		{Kind: models.KindSchoolBreak, Title: "Osterferien", Start: time.Date(2026, 3, 23, 0, 0, 0, 0, berlin), End: time.Date(2026, 4, 8, 0, 0, 0, 0, berlin)},
	}

	items := display.Build(nil, specials, berlin)
	require.Len(t, items, 2)

	assert.Equal(t, "🎉 Neujahr", items[0].Title)
	assert.Equal(t, display.HolidayColor, items[0].BackgroundColor)
	assert.Equal(t, "2026-01-01", items[0].Start)
	assert.Equal(t, "2026-01-02", items[0].End)
	assert.True(t, items[0].AllDay)
	assert.Equal(t, "background", items[0].Display)

	assert.Equal(t, "🏫 Osterferien", items[1].Title)
	assert.Equal(t, display.SchoolBreakColor, items[1].BackgroundColor)
	assert.Equal(t, "2026-04-08", items[1].End)
}

func TestOptions(t *testing.T) {
	opts := display.Options(2026)
	assert.Equal(t, "dayGridMonth", opts.InitialView)
	assert.Equal(t, "2026-01-01", opts.InitialDate)
	assert.Equal(t, 1, opts.FirstDay)
	assert.Equal(t, "2026-01-01", opts.ValidRange.Start)
	assert.Equal(t, "2027-01-01", opts.ValidRange.End)
}
