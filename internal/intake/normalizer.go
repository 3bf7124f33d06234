package intake

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"family-calendar/internal/models"
)

const (
	DefaultTargetYear = 2026
	maxTitleRunes     = 120
)

var (
	defaultStart    = models.NewClockTime(9, 0)
	defaultDuration = 60 * time.Minute
)

var germanMonths = map[string]time.Month{
	"januar": time.January, "jan": time.January,
	"februar": time.February, "feb": time.February,
	"märz": time.March, "maerz": time.March, "mrz": time.March,
	"april": time.April, "apr": time.April,
	"mai":  time.May,
	"juni": time.June, "jun": time.June,
	"juli": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"oktober": time.October, "okt": time.October,
	"november": time.November, "nov": time.November,
	"dezember": time.December, "dez": time.December,
}

var (
	numericDatePattern = regexp.MustCompile(`\b([0-3]?\d)\.([01]?\d)(?:\.(\d{4}))?\b`)
	monthNamePattern   = regexp.MustCompile(`\b([0-3]?\d)\.?\s+(januar|jan|februar|feb|märz|maerz|mrz|april|apr|mai|juni|jun|juli|jul|august|aug|september|sep|oktober|okt|november|nov|dezember|dez)\b`)
	clockPattern       = regexp.MustCompile(`\b([01]?\d|2[0-3])[:.]([0-5]\d)\b`)
	hourOnlyPattern    = regexp.MustCompile(`\bum\s*([01]?\d|2[0-3])\s*uhr\b`)
)

// relativeKeywords are checked in this order; the first keyword contained in
// the text wins regardless of where it appears.
var relativeKeywords = []struct {
	keyword string
	offset  int
}{
	{"übermorgen", 2},
	{"morgen", 1},
	{"heute", 0},
}

// Normalizer turns OCR output or a dictated sentence into a Suggestion.
// Every parsed date is moved into TargetYear.
type Normalizer struct {
	TargetYear int
	Location   *time.Location
	Now        func() time.Time
}

func NewNormalizer(targetYear int, loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{TargetYear: targetYear, Location: loc, Now: time.Now}
}

// dateMatcher reports matched=false when its pattern does not apply. A match
// with ok=false means the text named an impossible date; the search stops.
type dateMatcher func(n *Normalizer, text string) (date models.Date, matched, ok bool)

var dateMatchers = []dateMatcher{
	matchNumericDate,
	matchMonthName,
	matchRelativeKeyword,
}

// ParseDate returns the first date found in text.
func (n *Normalizer) ParseDate(text string) (models.Date, bool) {
	t := strings.ToLower(text)
	for _, match := range dateMatchers {
		date, matched, ok := match(n, t)
		if matched {
			return date, ok
		}
	}
	return models.Date{}, false
}

func (n *Normalizer) inTargetYear(month time.Month, day int) (models.Date, bool) {
	date := models.NewDate(n.TargetYear, month, day)
	return date, date.Valid()
}

func matchNumericDate(n *Normalizer, text string) (models.Date, bool, bool) {
	m := numericDatePattern.FindStringSubmatch(text)
	if m == nil {
		return models.Date{}, false, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if m[3] != "" {
		year, _ := strconv.Atoi(m[3])
		if !models.NewDate(year, time.Month(month), day).Valid() {
			return models.Date{}, true, false
		}
	}
	date, ok := n.inTargetYear(time.Month(month), day)
	return date, true, ok
}

func matchMonthName(n *Normalizer, text string) (models.Date, bool, bool) {
	m := monthNamePattern.FindStringSubmatch(text)
	if m == nil {
		return models.Date{}, false, false
	}
	day, _ := strconv.Atoi(m[1])
	date, ok := n.inTargetYear(germanMonths[m[2]], day)
	return date, true, ok
}

func matchRelativeKeyword(n *Normalizer, text string) (models.Date, bool, bool) {
	for _, rel := range relativeKeywords {
		if strings.Contains(text, rel.keyword) {
			today := models.DateOf(n.now())
			shifted := today.AddDays(rel.offset)
			date, ok := n.inTargetYear(shifted.Month, shifted.Day)
			return date, true, ok
		}
	}
	return models.Date{}, false, false
}

func (n *Normalizer) now() time.Time {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	if n.Location != nil {
		return now().In(n.Location)
	}
	return now()
}

// ParseTimes returns the first two clock times in text as start and end,
// falling back to "um N uhr" for a start without end. The token ParseDate
// reads as the date is not a clock time.
func (n *Normalizer) ParseTimes(text string) (start, end *models.ClockTime) {
	t := strings.ToLower(text)

	skipFrom, skipTo := numericDateSpan(t)
	var found []models.ClockTime
	for _, idx := range clockPattern.FindAllStringSubmatchIndex(t, -1) {
		if idx[0] < skipTo && skipFrom < idx[1] {
			continue
		}
		hour, _ := strconv.Atoi(t[idx[2]:idx[3]])
		minute, _ := strconv.Atoi(t[idx[4]:idx[5]])
		found = append(found, models.NewClockTime(hour, minute))
		if len(found) == 2 {
			break
		}
	}

	if len(found) > 0 {
		start = &found[0]
		if len(found) > 1 {
			end = &found[1]
		}
		return start, end
	}

	if m := hourOnlyPattern.FindStringSubmatch(t); m != nil {
		hour, _ := strconv.Atoi(m[1])
		c := models.NewClockTime(hour, 0)
		return &c, nil
	}
	return nil, nil
}

// numericDateSpan locates the day.month token matchNumericDate uses, when its
// numbers can be a date (day 1-31, month 1-12). It returns an empty span
// otherwise.
func numericDateSpan(text string) (from, to int) {
	idx := numericDatePattern.FindStringSubmatchIndex(text)
	if idx == nil {
		return 0, 0
	}
	day, _ := strconv.Atoi(text[idx[2]:idx[3]])
	month, _ := strconv.Atoi(text[idx[4]:idx[5]])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return 0, 0
	}
	return idx[0], idx[1]
}

// Suggest never fails: missing parts fall back to January 1st of the target
// year, 09:00 and a one hour duration.
func (n *Normalizer) Suggest(raw string) models.Suggestion {
	text := strings.TrimSpace(raw)

	date, ok := n.ParseDate(text)
	if !ok {
		date = models.NewDate(n.TargetYear, time.January, 1)
	}

	start, end := n.ParseTimes(text)
	if start == nil {
		s := defaultStart
		start = &s
	}
	if end == nil {
		e := models.ClockOf(date.At(*start, time.UTC).Add(defaultDuration))
		end = &e
	}

	return models.Suggestion{
		Title:     truncateRunes(text, maxTitleRunes),
		StartDate: date,
		StartTime: *start,
		EndDate:   date,
		EndTime:   *end,
		Notes:     text,
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

var defaultNormalizer = NewNormalizer(DefaultTargetYear, time.Local)

// ParseDateFromText uses a normalizer for the default target year.
func ParseDateFromText(text string) (models.Date, bool) {
	return defaultNormalizer.ParseDate(text)
}

func ParseTimesFromText(text string) (start, end *models.ClockTime) {
	return defaultNormalizer.ParseTimes(text)
}

func SuggestEventFields(text string) models.Suggestion {
	return defaultNormalizer.Suggest(text)
}
