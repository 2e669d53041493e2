package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/repository"
	"github.com/yfcm/prayer-chain/internal/schedule"
)

// WatchService is the watch-slot registry: claiming hourly slots on the wall,
// the one-slot-per-user rule for regular watchmen, and coverage stats.
type WatchService struct {
	watchRepo repository.WatchRepository
	activity  *ActivityService
}

func NewWatchService(watchRepo repository.WatchRepository, activity *ActivityService) *WatchService {
	return &WatchService{
		watchRepo: watchRepo,
		activity:  activity,
	}
}

// ClaimResult describes what a claim did. Released is true only for the
// admin toggle path.
type ClaimResult struct {
	Commitment *domain.WatchCommitment
	Released   bool
}

// Claim takes the slot for the user, subject to the registry rules:
//
//   - a regular watchman who already holds a different slot gets
//     ErrAlreadyCommitted and nothing changes;
//   - reclaiming the held slot returns ErrAlreadyPosted, also a no-op;
//   - a first claim always succeeds, regardless of how many others are
//     already on the slot (the wall has no occupancy cap);
//   - an admin may hold any number of slots, and claiming a slot they
//     already hold releases it instead.
//
// A successful claim appends a "commitment" activity event. That append is
// best-effort: a failure is logged and the claim stands.
//
// The rule check and the insert run in one transaction at the repository,
// so two simultaneous claims by the same watchman cannot both land.
func (s *WatchService) Claim(ctx context.Context, userID uuid.UUID, userName string, hourIdx int, isAdmin bool) (*ClaimResult, error) {
	if hourIdx < 0 || hourIdx >= domain.TotalSlots {
		return nil, domain.ErrInvalidHour
	}

	commitment := &domain.WatchCommitment{
		ID:        uuid.New(),
		UserID:    userID,
		UserName:  userName,
		HourIdx:   hourIdx,
		CreatedAt: time.Now(),
	}

	released, err := s.watchRepo.ClaimSlot(ctx, commitment, isAdmin)
	if err != nil {
		return nil, err
	}
	if released {
		return &ClaimResult{Released: true}, nil
	}

	s.activity.RecordBestEffort(ctx, userName, domain.ActivityCommitment, "")

	return &ClaimResult{Commitment: commitment}, nil
}

// ListSlots returns all 24 slots with their occupants. When userID is
// non-nil, each slot's Mine flag reflects that user's commitments.
func (s *WatchService) ListSlots(ctx context.Context, userID *uuid.UUID) ([]domain.Slot, error) {
	commitments, err := s.watchRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.Slot, domain.TotalSlots)
	for i := range slots {
		slots[i] = domain.Slot{
			HourIdx:   i,
			HourLabel: schedule.HourLabel(i),
		}
	}

	for _, c := range commitments {
		slot := &slots[c.HourIdx]
		slot.Count++
		slot.Occupants = append(slot.Occupants, domain.SlotOccupant{
			UserID:   c.UserID,
			UserName: c.UserName,
		})
		if userID != nil && c.UserID == *userID {
			slot.Mine = true
		}
	}

	return slots, nil
}

// Coverage counts distinct slots with at least one occupant.
func (s *WatchService) Coverage(ctx context.Context) (domain.Coverage, error) {
	commitments, err := s.watchRepo.GetAll(ctx)
	if err != nil {
		return domain.Coverage{}, err
	}

	occupied := make(map[int]struct{})
	for _, c := range commitments {
		occupied[c.HourIdx] = struct{}{}
	}

	return domain.Coverage{
		Occupied: len(occupied),
		Total:    domain.TotalSlots,
	}, nil
}

// ClearUserCommitments releases every slot a user holds. Admin moderation
// path, used from the dashboard when removing a registrant.
func (s *WatchService) ClearUserCommitments(ctx context.Context, userID uuid.UUID) error {
	return s.watchRepo.DeleteByUserID(ctx, userID)
}
