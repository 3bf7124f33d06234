// Package display builds the input for the browser calendar widget.
package display

import (
	"fmt"
	"time"

	"family-calendar/internal/models"
)

const (
	FallbackColor    = "#64748b"
	HolidayColor     = "#ef4444"
	SchoolBreakColor = "#eab308"

	holidayEmoji     = "🎉"
	schoolBreakEmoji = "🏫"
)

var OwnerColors = map[models.Owner]string{
	models.OwnerMama:  "#3b82f6",
	models.OwnerPapa:  "#22c55e",
	models.OwnerKind1: "#f97316",
	models.OwnerKind2: "#a855f7",
	models.OwnerAll:   "#111827",
}

// Item is one entry handed to the calendar widget.
type Item struct {
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor,omitempty"`
	AllDay          bool   `json:"allDay,omitempty"`
	Display         string `json:"display,omitempty"`
}

func OwnerColor(owner models.Owner) string {
	if c, ok := OwnerColors[owner]; ok {
		return c
	}
	return FallbackColor
}

// Build renders events as colored blocks and special days as all-day
// background bands. Special day ends stay exclusive.
func Build(events []models.Event, specials []models.SpecialDay, loc *time.Location) []Item {
	if loc == nil {
		loc = time.Local
	}

	items := make([]Item, 0, len(events)+len(specials))
	for _, e := range events {
		color := OwnerColor(e.Owner)
		items = append(items, Item{
			Title:           fmt.Sprintf("%s (%s)", e.Title, e.Owner),
			Start:           e.Start.In(loc).Format(time.RFC3339),
			End:             e.End.In(loc).Format(time.RFC3339),
			BackgroundColor: color,
			BorderColor:     color,
		})
	}

	for _, s := range specials {
		color, emoji := SchoolBreakColor, schoolBreakEmoji
		if s.Kind == models.KindHoliday {
			color, emoji = HolidayColor, holidayEmoji
		}
		items = append(items, Item{
			Title:           emoji + " " + s.Title,
			Start:           s.Start.In(loc).Format("2006-01-02"),
			End:             s.End.In(loc).Format("2006-01-02"),
			BackgroundColor: color,
			AllDay:          true,
			Display:         "background",
		})
	}
	return items
}

type Toolbar struct {
	Left   string `json:"left"`
	Center string `json:"center"`
	Right  string `json:"right"`
}

type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WidgetOptions configures the month view for the single target year.
type WidgetOptions struct {
	InitialView   string  `json:"initialView"`
	InitialDate   string  `json:"initialDate"`
	HeaderToolbar Toolbar `json:"headerToolbar"`
	FirstDay      int     `json:"firstDay"`
	Height        int     `json:"height"`
	ValidRange    Range   `json:"validRange"`
}

func Options(year int) WidgetOptions {
	first := fmt.Sprintf("%04d-01-01", year)
	return WidgetOptions{
		InitialView: "dayGridMonth",
		InitialDate: first,
		HeaderToolbar: Toolbar{
			Left:   "prev,next today",
			Center: "title",
			Right:  "dayGridMonth,timeGridWeek,listMonth",
		},
		FirstDay:   1, // Monday
		Height:     760,
		ValidRange: Range{Start: first, End: fmt.Sprintf("%04d-01-01", year+1)},
	}
}
