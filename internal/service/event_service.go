package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/config"
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/repository"
	"github.com/yfcm/prayer-chain/internal/schedule"
)

// EventService owns the event start date and the prayer themes.
type EventService struct {
	configRepo repository.EventConfigRepository
	themeRepo  repository.ThemeRepository
	cfg        *config.Config
}

func NewEventService(configRepo repository.EventConfigRepository, themeRepo repository.ThemeRepository, cfg *config.Config) *EventService {
	return &EventService{
		configRepo: configRepo,
		themeRepo:  themeRepo,
		cfg:        cfg,
	}
}

// StartDate resolves the effective start date: stored config first, then the
// process config, then the built-in default. A read failure falls back
// silently; a broken config row must never take the countdown down.
func (s *EventService) StartDate(ctx context.Context) time.Time {
	stored, err := s.configRepo.Get(ctx)
	if err == nil && stored != nil && !stored.StartDate.IsZero() {
		return stored.StartDate
	}
	if err != nil {
		log.Printf("event: using default start date: %v", err)
	}
	if !s.cfg.EventStartDate.IsZero() {
		return s.cfg.EventStartDate
	}
	return schedule.DefaultStartDate
}

// Timing derives the event clock for now.
func (s *EventService) Timing(ctx context.Context, now time.Time) schedule.Timing {
	return schedule.Derive(s.StartDate(ctx), now)
}

// UpdateStartDate writes the start date. Callers must already have verified
// the actor is an admin; updatedBy is recorded for the audit trail.
func (s *EventService) UpdateStartDate(ctx context.Context, updatedBy uuid.UUID, startDate time.Time) error {
	return s.configRepo.Upsert(ctx, &domain.EventConfig{
		StartDate: startDate,
		UpdatedAt: time.Now(),
		UpdatedBy: &updatedBy,
	})
}

// Theme returns the theme for a block, defaults merged with any stored
// override field by field.
func (s *EventService) Theme(ctx context.Context, hourBlock int) (domain.PrayerTheme, error) {
	defaults := domain.DefaultThemes()
	base, ok := defaults[hourBlock]
	if !ok {
		base = defaults[domain.ThemeBlockForHour(hourBlock)]
	}

	override, err := s.themeRepo.Get(ctx, base.HourBlock)
	if err != nil {
		// Missing override rows are the normal case.
		return base, nil
	}
	return domain.MergeTheme(base, override), nil
}

// Themes returns all four blocks, merged.
func (s *EventService) Themes(ctx context.Context) ([]domain.PrayerTheme, error) {
	overrides := make(map[int]*domain.PrayerTheme)
	stored, err := s.themeRepo.GetAll(ctx)
	if err != nil {
		log.Printf("event: theme overrides unavailable, serving defaults: %v", err)
	} else {
		for _, o := range stored {
			overrides[o.HourBlock] = o
		}
	}

	defaults := domain.DefaultThemes()
	themes := make([]domain.PrayerTheme, 0, len(domain.ThemeBlocks))
	for _, block := range domain.ThemeBlocks {
		themes = append(themes, domain.MergeTheme(defaults[block], overrides[block]))
	}
	return themes, nil
}

// UpdateTheme stores an override for the block. Empty fields in the patch
// keep falling through to the defaults at read time.
func (s *EventService) UpdateTheme(ctx context.Context, theme *domain.PrayerTheme) error {
	theme.UpdatedAt = time.Now()
	return s.themeRepo.Upsert(ctx, theme)
}
