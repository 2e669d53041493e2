package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/repository"
)

const activityFeedLimit = 50

type ActivityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

func (s *ActivityService) Record(ctx context.Context, userName string, activityType domain.ActivityType, location string) error {
	event := &domain.ActivityEvent{
		ID:        uuid.New(),
		UserName:  userName,
		Type:      activityType,
		Location:  location,
		CreatedAt: time.Now(),
	}
	return s.activityRepo.Create(ctx, event)
}

// RecordBestEffort logs and swallows failures. The audit trail never blocks
// or rolls back the action that produced it.
func (s *ActivityService) RecordBestEffort(ctx context.Context, userName string, activityType domain.ActivityType, location string) {
	if err := s.Record(ctx, userName, activityType, location); err != nil {
		log.Printf("activity: failed to record %s event for %s: %v", activityType, userName, err)
	}
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error) {
	if limit <= 0 || limit > activityFeedLimit {
		limit = activityFeedLimit
	}
	return s.activityRepo.GetRecent(ctx, limit)
}
