package service

import (
	"github.com/yfcm/prayer-chain/internal/config"
	"github.com/yfcm/prayer-chain/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Watch    *WatchService
	Event    *EventService
	Prayer   *PrayerService
	Activity *ActivityService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	activity := NewActivityService(repos.Activity)

	return &Services{
		Auth:     NewAuthService(repos.User, repos.Session, activity, cfg),
		Watch:    NewWatchService(repos.Watch, activity),
		Event:    NewEventService(repos.EventConfig, repos.Theme, cfg),
		Prayer:   NewPrayerService(repos.Prayer, activity),
		Activity: activity,
	}
}
