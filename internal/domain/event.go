package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventConfigID is the primary key of the single event configuration row.
const EventConfigID = 1

// EventConfig is the singleton holding the mutable event start date.
// Only admins may write it; every client derives timing from it.
type EventConfig struct {
	ID        int        `json:"-" gorm:"primary_key"`
	StartDate time.Time  `json:"startDate" gorm:"not null"`
	UpdatedAt time.Time  `json:"updatedAt"`
	UpdatedBy *uuid.UUID `json:"updatedBy,omitempty" gorm:"type:uuid"`
}
