package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type prayerRepository struct {
	db *gorm.DB
}

func NewPrayerRepository(db *gorm.DB) *prayerRepository {
	return &prayerRepository{db: db}
}

func (r *prayerRepository) Create(ctx context.Context, post *domain.PrayerPost) error {
	if len(post.AmenedBy) == 0 {
		post.AmenedBy = datatypes.JSON([]byte("[]"))
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *prayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PrayerPost, error) {
	var post domain.PrayerPost
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *prayerRepository) GetRecent(ctx context.Context, limit int) ([]*domain.PrayerPost, error) {
	var posts []*domain.PrayerPost
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleAmen adds or removes the user from the amen set inside a single
// transaction. The row is locked for the duration, so two concurrent amens
// from the same user collapse to one membership change instead of a
// double-count.
func (r *prayerRepository) ToggleAmen(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.PrayerPost, error) {
	var post domain.PrayerPost

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&post, "id = ?", id).Error; err != nil {
			return err
		}

		ids := post.AmenedByIDs()
		found := false
		filtered := ids[:0]
		for _, existing := range ids {
			if existing == userID {
				found = true
				continue
			}
			filtered = append(filtered, existing)
		}
		if !found {
			filtered = append(filtered, userID)
		}

		encoded, err := json.Marshal(filtered)
		if err != nil {
			return err
		}
		post.AmenedBy = datatypes.JSON(encoded)

		return tx.Model(&domain.PrayerPost{}).
			Where("id = ?", id).
			Update("amened_by", post.AmenedBy).Error
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *prayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.PrayerPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
