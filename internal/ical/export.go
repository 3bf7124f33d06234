// Package ical exports the calendar as an iCalendar feed.
package ical

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"family-calendar/internal/models"
)

const (
	ProductID = "-//Familienkalender//family-calendar//DE"
	uidDomain = "familienkalender.local"
)

type Exporter struct {
	Name     string
	Location *time.Location
	Now      func() time.Time
}

func NewExporter(name string, loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.Local
	}
	return &Exporter{Name: name, Location: loc, Now: time.Now}
}

// Build assembles one VEVENT per event and one all-day VEVENT per special day.
func (x *Exporter) Build(events []models.Event, specials []models.SpecialDay) *ics.Calendar {
	stamp := x.Now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(x.Name)
	cal.SetXWRTimezone(x.Location.String())

	for _, e := range events {
		ev := cal.AddEvent(fmt.Sprintf("event-%d@%s", e.ID, uidDomain))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(e.Start)
		ev.SetEndAt(e.End)
		ev.SetSummary(fmt.Sprintf("%s (%s)", e.Title, e.Owner))
		if notes := e.NotesText(); notes != "" {
			ev.SetDescription(notes)
		}
		ev.SetProperty(ics.ComponentPropertyCategories, string(e.Owner))
	}

	for _, d := range specials {
		ev := cal.AddEvent(fmt.Sprintf("%s-%s@%s", d.Kind, d.Start.In(x.Location).Format("20060102"), uidDomain))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(d.Start.In(x.Location))
		ev.SetAllDayEndAt(d.End.In(x.Location))
		ev.SetSummary(d.Title)
		ev.SetProperty(ics.ComponentPropertyCategories, string(d.Kind))
		ev.SetProperty(ics.ComponentPropertyTransp, "TRANSPARENT")
	}
	return cal
}

func (x *Exporter) Write(w io.Writer, events []models.Event, specials []models.SpecialDay) error {
	_, err := io.WriteString(w, x.Build(events, specials).Serialize())
	return err
}
