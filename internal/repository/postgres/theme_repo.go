package postgres

import (
	"context"

	"github.com/yfcm/prayer-chain/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type themeRepository struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) *themeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) Get(ctx context.Context, hourBlock int) (*domain.PrayerTheme, error) {
	var theme domain.PrayerTheme
	err := r.db.WithContext(ctx).First(&theme, "hour_block = ?", hourBlock).Error
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepository) GetAll(ctx context.Context) ([]*domain.PrayerTheme, error) {
	var themes []*domain.PrayerTheme
	err := r.db.WithContext(ctx).Order("hour_block ASC").Find(&themes).Error
	if err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *themeRepository) Upsert(ctx context.Context, theme *domain.PrayerTheme) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hour_block"}},
		UpdateAll: true,
	}).Create(theme).Error
}
