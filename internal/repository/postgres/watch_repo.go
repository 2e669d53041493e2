package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type watchRepository struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) *watchRepository {
	return &watchRepository{db: db}
}

// ClaimSlot applies the registry rules for one claim inside a single
// transaction. Concurrent claims by the same user serialize on the user's
// row; locking the commitment rows alone would not block a second insert
// when both readers see an empty set.
func (r *watchRepository) ClaimSlot(ctx context.Context, commitment *domain.WatchCommitment, multiSlot bool) (bool, error) {
	released := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", commitment.UserID).Error; err != nil {
			return err
		}

		var mine []*domain.WatchCommitment
		if err := tx.Where("user_id = ?", commitment.UserID).Find(&mine).Error; err != nil {
			return err
		}

		holdsThis := false
		for _, c := range mine {
			if c.HourIdx == commitment.HourIdx {
				holdsThis = true
				break
			}
		}

		if multiSlot && holdsThis {
			released = true
			return tx.Delete(&domain.WatchCommitment{},
				"user_id = ? AND hour_idx = ?", commitment.UserID, commitment.HourIdx).Error
		}

		if !multiSlot && len(mine) > 0 {
			if holdsThis {
				return domain.ErrAlreadyPosted
			}
			return domain.ErrAlreadyCommitted
		}

		return tx.Create(commitment).Error
	})
	if err != nil {
		return false, err
	}

	return released, nil
}

func (r *watchRepository) Upsert(ctx context.Context, commitment *domain.WatchCommitment) error {
	// Reclaiming the same slot is a no-op at the storage level.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "hour_idx"}},
		DoNothing: true,
	}).Create(commitment).Error
}

func (r *watchRepository) GetAll(ctx context.Context) ([]*domain.WatchCommitment, error) {
	var commitments []*domain.WatchCommitment
	err := r.db.WithContext(ctx).
		Order("hour_idx ASC, created_at ASC").
		Find(&commitments).Error
	if err != nil {
		return nil, err
	}
	return commitments, nil
}

func (r *watchRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.WatchCommitment, error) {
	var commitments []*domain.WatchCommitment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("hour_idx ASC").
		Find(&commitments).Error
	if err != nil {
		return nil, err
	}
	return commitments, nil
}

func (r *watchRepository) Delete(ctx context.Context, userID uuid.UUID, hourIdx int) error {
	return r.db.WithContext(ctx).
		Delete(&domain.WatchCommitment{}, "user_id = ? AND hour_idx = ?", userID, hourIdx).Error
}

func (r *watchRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.WatchCommitment{}, "user_id = ?", userID).Error
}
