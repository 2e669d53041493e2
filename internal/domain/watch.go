package domain

import (
	"time"

	"github.com/google/uuid"
)

// TotalSlots is the number of hourly watch slots on the wall. Slots repeat
// daily for the duration of the event, so the grid is 24 wide regardless of
// how many days the chain runs.
const TotalSlots = 24

// WatchCommitment records that a user has taken an hourly watch slot.
// Non-admin users hold at most one commitment; admins may hold several.
type WatchCommitment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_watch_user_hour"`
	UserName  string    `json:"userName" gorm:"not null"`
	HourIdx   int       `json:"hourIdx" gorm:"not null;uniqueIndex:idx_watch_user_hour"`
	CreatedAt time.Time `json:"createdAt"`
}

// SlotOccupant identifies one user standing on a slot.
type SlotOccupant struct {
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
}

// Slot is one hour of the wall with everyone posted to it.
type Slot struct {
	HourIdx   int            `json:"hourIdx"`
	HourLabel string         `json:"hourLabel"`
	Count     int            `json:"count"`
	Occupants []SlotOccupant `json:"occupants"`
	Mine      bool           `json:"mine"`
}

// Coverage is the wall-level summary shown as "N/24 gaps filled".
type Coverage struct {
	Occupied int `json:"occupied"`
	Total    int `json:"total"`
}
