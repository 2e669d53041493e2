package postgres

import (
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.WatchCommitment{},
		&domain.EventConfig{},
		&domain.PrayerTheme{},
		&domain.PrayerPost{},
		&domain.ActivityEvent{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Watch:       NewWatchRepository(db),
		EventConfig: NewEventConfigRepository(db),
		Theme:       NewThemeRepository(db),
		Prayer:      NewPrayerRepository(db),
		Activity:    NewActivityRepository(db),
	}
}
