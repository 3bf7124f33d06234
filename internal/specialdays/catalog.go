package specialdays

import (
	"time"

	"family-calendar/internal/models"
)

// Entry is a catalog row with both days inclusive, as published.
type Entry struct {
	Kind  models.SpecialDayKind
	Title string
	First models.Date
	Last  models.Date
}

func d(year int, month time.Month, day int) models.Date {
	return models.NewDate(year, month, day)
}

func single(kind models.SpecialDayKind, title string, day models.Date) Entry {
	return Entry{Kind: kind, Title: title, First: day, Last: day}
}

// Niedersachsen2026 is the published school-break and public-holiday
// calendar for Lower Saxony, 2026. Hand-verified against the Kultusministerium
// Ferienordnung and the Feiertagsgesetz.
var Niedersachsen2026 = []Entry{
	{Kind: models.KindSchoolBreak, Title: "Halbjahresferien", First: d(2026, time.February, 2), Last: d(2026, time.February, 3)},
	{Kind: models.KindSchoolBreak, Title: "Osterferien", First: d(2026, time.March, 23), Last: d(2026, time.April, 7)},
	single(models.KindSchoolBreak, "Tag nach Himmelfahrt", d(2026, time.May, 15)),
	single(models.KindSchoolBreak, "Pfingstferien (Ferientag)", d(2026, time.May, 26)),
	{Kind: models.KindSchoolBreak, Title: "Sommerferien", First: d(2026, time.July, 2), Last: d(2026, time.August, 12)},
	{Kind: models.KindSchoolBreak, Title: "Herbstferien", First: d(2026, time.October, 12), Last: d(2026, time.October, 24)},
	{Kind: models.KindSchoolBreak, Title: "Weihnachtsferien", First: d(2026, time.December, 23), Last: d(2027, time.January, 9)},

	single(models.KindHoliday, "Neujahr", d(2026, time.January, 1)),
	single(models.KindHoliday, "Karfreitag", d(2026, time.April, 3)),
	single(models.KindHoliday, "Ostermontag", d(2026, time.April, 6)),
	single(models.KindHoliday, "Tag der Arbeit", d(2026, time.May, 1)),
	single(models.KindHoliday, "Christi Himmelfahrt", d(2026, time.May, 14)),
	single(models.KindHoliday, "Pfingstmontag", d(2026, time.May, 25)),
	single(models.KindHoliday, "Tag der Deutschen Einheit", d(2026, time.October, 3)),
	single(models.KindHoliday, "Reformationstag", d(2026, time.October, 31)),
	single(models.KindHoliday, "1. Weihnachtstag", d(2026, time.December, 25)),
	single(models.KindHoliday, "2. Weihnachtstag", d(2026, time.December, 26)),
}

// SpecialDay converts the entry to a storable interval in loc, with End set
// to midnight after the last inclusive day.
func (e Entry) SpecialDay(loc *time.Location) models.SpecialDay {
	return models.SpecialDay{
		Kind:  e.Kind,
		Title: e.Title,
		Start: e.First.At(models.ClockTime{}, loc),
		End:   e.Last.AddDays(1).At(models.ClockTime{}, loc),
	}
}

// Build converts catalog entries for storage.
func Build(entries []Entry, loc *time.Location) []models.SpecialDay {
	days := make([]models.SpecialDay, 0, len(entries))
	for _, e := range entries {
		days = append(days, e.SpecialDay(loc))
	}
	return days
}

// Catalog returns the stored form of the catalog for region and year, or
// nil if none is bundled.
func Catalog(region string, year int, loc *time.Location) []models.SpecialDay {
	if region == "Niedersachsen" && year == 2026 {
		return Build(Niedersachsen2026, loc)
	}
	return nil
}
