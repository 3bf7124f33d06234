package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Owner is the household member an event belongs to.
type Owner string

const (
	OwnerMama  Owner = "Mama"
	OwnerPapa  Owner = "Papa"
	OwnerKind1 Owner = "Kind1"
	OwnerKind2 Owner = "Kind2"
	OwnerAll   Owner = "Alle"
)

// Owners lists the selectable members in form order.
var Owners = []Owner{OwnerMama, OwnerPapa, OwnerKind1, OwnerKind2, OwnerAll}

func (o Owner) Valid() bool {
	for _, known := range Owners {
		if o == known {
			return true
		}
	}
	return false
}

// Event is a user-created calendar entry. Events are never updated in place.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID    int64     `bun:"id,pk,autoincrement" json:"id"`
	Title string    `bun:"title,notnull" json:"title"`
	Owner Owner     `bun:"owner,notnull" json:"owner"`
	Start time.Time `bun:"start,notnull" json:"start"`
	End   time.Time `bun:"end,notnull" json:"end"`
	Notes *string   `bun:"notes" json:"notes,omitempty"`
}

// NotesText returns the notes or an empty string.
func (e Event) NotesText() string {
	if e.Notes == nil {
		return ""
	}
	return *e.Notes
}
