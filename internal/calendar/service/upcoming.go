package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"family-calendar/internal/models"
)

const (
	RowAppointment = "Termin"
	RowHoliday     = "Feiertag"
	RowSchoolBreak = "Ferien"
	AllDay         = "ganztägig"
)

var germanWeekdays = [...]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

// UpcomingRow is one line of the "next days" table.
type UpcomingRow struct {
	Type  string    `json:"type"`
	Date  string    `json:"date"`
	Time  string    `json:"time"`
	Title string    `json:"title"`
	Owner string    `json:"owner"`
	Notes string    `json:"notes"`
	Start time.Time `json:"start"`
}

// Upcoming merges events and special days overlapping [now, now+days],
// ordered by start.
func (s *EventService) Upcoming(ctx context.Context, now time.Time, days int) ([]UpcomingRow, error) {
	until := now.Add(time.Duration(days) * 24 * time.Hour)

	events, err := s.DB.ListEventsBetween(ctx, now, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	specials, err := s.DB.ListSpecialDaysBetween(ctx, now, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming special days: %w", err)
	}

	rows := make([]UpcomingRow, 0, len(events)+len(specials))
	for _, e := range events {
		start, end := e.Start.In(s.Location), e.End.In(s.Location)
		rows = append(rows, UpcomingRow{
			Type:  RowAppointment,
			Date:  formatDay(start),
			Time:  start.Format("15:04") + "–" + end.Format("15:04"),
			Title: e.Title,
			Owner: string(e.Owner),
			Notes: e.NotesText(),
			Start: e.Start,
		})
	}
	for _, d := range specials {
		kind := RowSchoolBreak
		if d.Kind == models.KindHoliday {
			kind = RowHoliday
		}
		rows = append(rows, UpcomingRow{
			Type:  kind,
			Date:  formatDay(d.Start.In(s.Location)),
			Time:  AllDay,
			Title: d.Title,
			Start: d.Start,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Start.Before(rows[j].Start)
	})
	return rows, nil
}

func formatDay(t time.Time) string {
	return germanWeekdays[t.Weekday()] + ", " + t.Format("02.01.2006")
}
