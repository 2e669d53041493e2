package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/repository"
	"gorm.io/gorm"
)

const (
	prayerWallLimit  = 50
	maxPrayerContent = 500
)

type PrayerService struct {
	prayerRepo repository.PrayerRepository
	activity   *ActivityService
}

func NewPrayerService(prayerRepo repository.PrayerRepository, activity *ActivityService) *PrayerService {
	return &PrayerService{
		prayerRepo: prayerRepo,
		activity:   activity,
	}
}

func (s *PrayerService) Post(ctx context.Context, userID uuid.UUID, userName, content string) (*domain.PrayerPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}
	if len([]rune(content)) > maxPrayerContent {
		return nil, domain.ErrContentTooLong
	}

	post := &domain.PrayerPost{
		ID:        uuid.New(),
		UserID:    userID,
		UserName:  userName,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.prayerRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.activity.RecordBestEffort(ctx, userName, domain.ActivityPrayer, "")

	return post, nil
}

func (s *PrayerService) List(ctx context.Context, limit int) ([]*domain.PrayerPost, error) {
	if limit <= 0 || limit > prayerWallLimit {
		limit = prayerWallLimit
	}
	return s.prayerRepo.GetRecent(ctx, limit)
}

// Amen toggles the user's membership in the post's amen set. The count shown
// to clients is always derived from the set, so concurrent clicks cannot
// drift it.
func (s *PrayerService) Amen(ctx context.Context, prayerID, userID uuid.UUID) (*domain.PrayerPost, error) {
	post, err := s.prayerRepo.ToggleAmen(ctx, prayerID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrayerNotFound
		}
		return nil, err
	}
	return post, nil
}

// Delete removes a post from the wall. Admin moderation path.
func (s *PrayerService) Delete(ctx context.Context, prayerID uuid.UUID) error {
	err := s.prayerRepo.Delete(ctx, prayerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrPrayerNotFound
	}
	return err
}
