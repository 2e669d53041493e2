package domain

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityJoined     ActivityType = "joined"
	ActivityCommitment ActivityType = "commitment"
	ActivityPrayer     ActivityType = "prayer"
)

// ActivityEvent is an append-only audit entry shown in the activity marquee.
type ActivityEvent struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserName  string       `json:"userName" gorm:"not null"`
	Type      ActivityType `json:"type" gorm:"not null"`
	Location  string       `json:"location,omitempty"`
	CreatedAt time.Time    `json:"createdAt" gorm:"index"`
}
