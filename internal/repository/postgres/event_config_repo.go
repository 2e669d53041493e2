package postgres

import (
	"context"

	"github.com/yfcm/prayer-chain/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type eventConfigRepository struct {
	db *gorm.DB
}

func NewEventConfigRepository(db *gorm.DB) *eventConfigRepository {
	return &eventConfigRepository{db: db}
}

func (r *eventConfigRepository) Get(ctx context.Context) (*domain.EventConfig, error) {
	var cfg domain.EventConfig
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", domain.EventConfigID).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *eventConfigRepository) Upsert(ctx context.Context, cfg *domain.EventConfig) error {
	cfg.ID = domain.EventConfigID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(cfg).Error
}
