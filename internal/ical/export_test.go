package ical_test

import (
	"strings"
	"testing"
	"time"

	"family-calendar/internal/ical"
	"family-calendar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	x := ical.NewExporter("Familienkalender 2026", berlin)
	x.Now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }

	notes := "Impfpass"
	events := []models.Event{{
		ID:    3,
		Title: "Kinderarzt",
		Owner: models.OwnerKind1,
		Start: time.Date(2026, 1, 12, 15, 0, 0, 0, berlin),
		End:   time.Date(2026, 1, 12, 16, 0, 0, 0, berlin),
		Notes: &notes,
	}}
	specials := []models.SpecialDay{{
		Kind:  models.KindHoliday,
		Title: "Neujahr",
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, berlin),
		End:   time.Date(2026, 1, 2, 0, 0, 0, 0, berlin),
	}}

	var sb strings.Builder
	require.NoError(t, x.Write(&sb, events, specials))
	body := sb.String()

	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "X-WR-CALNAME:Familienkalender 2026")
	assert.Contains(t, body, "UID:event-3@familienkalender.local")
	assert.Contains(t, body, "SUMMARY:Kinderarzt (Kind1)")
	assert.Contains(t, body, "DTSTART:20260112T140000Z")
	assert.Contains(t, body, "DTEND:20260112T150000Z")
	assert.Contains(t, body, "DESCRIPTION:Impfpass")
	assert.Contains(t, body, "SUMMARY:Neujahr")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20260101")
	assert.Contains(t, body, "DTEND;VALUE=DATE:20260102")
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
}

func TestWriteEmpty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, ical.NewExporter("leer", time.UTC).Write(&sb, nil, nil))
	assert.Contains(t, sb.String(), "END:VCALENDAR")
	assert.NotContains(t, sb.String(), "BEGIN:VEVENT")
}
