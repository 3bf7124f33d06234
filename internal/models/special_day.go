package models

import (
	"time"

	"github.com/uptrace/bun"
)

type SpecialDayKind string

const (
	KindHoliday     SpecialDayKind = "holiday"
	KindSchoolBreak SpecialDayKind = "school_break"
)

func (k SpecialDayKind) Valid() bool {
	return k == KindHoliday || k == KindSchoolBreak
}

// SpecialDay is a public holiday or school-break interval. End is exclusive:
// a single day D is stored as [D, D+1).
type SpecialDay struct {
	bun.BaseModel `bun:"table:special_days"`

	ID    int64          `bun:"id,pk,autoincrement" json:"id"`
	Kind  SpecialDayKind `bun:"kind,notnull" json:"kind"`
	Title string         `bun:"title,notnull" json:"title"`
	Start time.Time      `bun:"start,notnull" json:"start"`
	End   time.Time      `bun:"end,notnull" json:"end"`
}
