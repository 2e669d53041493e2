package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PrayerPost is one entry on the public prayer wall. AmenedBy is the set of
// user IDs who have said amen; the displayed count is always derived from the
// set, never stored separately.
type PrayerPost struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;not null"`
	UserName  string         `json:"userName" gorm:"not null"`
	Content   string         `json:"content" gorm:"not null"`
	AmenedBy  datatypes.JSON `json:"amenedBy"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AmenedByIDs decodes the amen set. A missing or malformed column reads as
// empty rather than failing the whole post.
func (p *PrayerPost) AmenedByIDs() []uuid.UUID {
	var ids []uuid.UUID
	if len(p.AmenedBy) == 0 {
		return nil
	}
	if err := json.Unmarshal(p.AmenedBy, &ids); err != nil {
		return nil
	}
	return ids
}

// AmenCount is len(AmenedBy).
func (p *PrayerPost) AmenCount() int {
	return len(p.AmenedByIDs())
}

// HasAmened reports whether userID is in the amen set.
func (p *PrayerPost) HasAmened(userID uuid.UUID) bool {
	for _, id := range p.AmenedByIDs() {
		if id == userID {
			return true
		}
	}
	return false
}
