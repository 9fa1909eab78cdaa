package model

import (
	"time"

	"github.com/google/uuid"
)

// BlockScope limits a blocked date to one booking category or to all.
type BlockScope string

const (
	BlockScopeAll    BlockScope = "all"
	BlockScopeResort BlockScope = "resort"
	BlockScopeTurf   BlockScope = "turf"
	BlockScopeEvent  BlockScope = "event"
)

func (s BlockScope) Valid() bool {
	switch s {
	case BlockScopeAll, BlockScopeResort, BlockScopeTurf, BlockScopeEvent:
		return true
	}
	return false
}

// Covers reports whether a block with this scope applies to the category.
func (s BlockScope) Covers(t BookingType) bool {
	return s == BlockScopeAll || string(s) == string(t)
}

type BlockedDate struct {
	ID        uuid.UUID  `json:"id"`
	Date      string     `json:"date"` // YYYY-MM-DD
	Scope     BlockScope `json:"scope"`
	Reason    string     `json:"reason"`
	CreatedAt time.Time  `json:"created_at"`
}
