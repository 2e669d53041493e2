package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type WatchRepository interface {
	ClaimSlot(ctx context.Context, commitment *domain.WatchCommitment, multiSlot bool) (released bool, err error)
	Upsert(ctx context.Context, commitment *domain.WatchCommitment) error
	GetAll(ctx context.Context) ([]*domain.WatchCommitment, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.WatchCommitment, error)
	Delete(ctx context.Context, userID uuid.UUID, hourIdx int) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type EventConfigRepository interface {
	Get(ctx context.Context) (*domain.EventConfig, error)
	Upsert(ctx context.Context, cfg *domain.EventConfig) error
}

type ThemeRepository interface {
	Get(ctx context.Context, hourBlock int) (*domain.PrayerTheme, error)
	GetAll(ctx context.Context) ([]*domain.PrayerTheme, error)
	Upsert(ctx context.Context, theme *domain.PrayerTheme) error
}

type PrayerRepository interface {
	Create(ctx context.Context, post *domain.PrayerPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PrayerPost, error)
	GetRecent(ctx context.Context, limit int) ([]*domain.PrayerPost, error)
	ToggleAmen(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.PrayerPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ActivityRepository interface {
	Create(ctx context.Context, event *domain.ActivityEvent) error
	GetRecent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error)
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Watch       WatchRepository
	EventConfig EventConfigRepository
	Theme       ThemeRepository
	Prayer      PrayerRepository
	Activity    ActivityRepository
}
