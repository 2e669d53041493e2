package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/repository/postgres"
	"github.com/yfcm/prayer-chain/internal/schedule"
	"github.com/yfcm/prayer-chain/internal/service"
	"github.com/yfcm/prayer-chain/internal/testutil"
)

func newEventService(t *testing.T, testDB *testutil.TestDB) *service.EventService {
	t.Helper()
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewEventService(repos.EventConfig, repos.Theme, testutil.TestConfig())
}

func TestEventService_StartDate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	eventService := newEventService(t, testDB)
	ctx := context.Background()

	t.Run("falls back to default without a stored config", func(t *testing.T) {
		testDB.Truncate(t)

		start := eventService.StartDate(ctx)
		assert.Equal(t, schedule.DefaultStartDate, start)
	})

	t.Run("uses the stored start date once set", func(t *testing.T) {
		testDB.Truncate(t)
		admin, _ := testutil.NewAdminBuilder().Build(t, testDB.DB)

		newStart := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
		require.NoError(t, eventService.UpdateStartDate(ctx, admin.ID, newStart))

		start := eventService.StartDate(ctx)
		assert.True(t, start.Equal(newStart), "expected %v, got %v", newStart, start)
	})

	t.Run("update overwrites the previous date", func(t *testing.T) {
		testDB.Truncate(t)
		admin, _ := testutil.NewAdminBuilder().Build(t, testDB.DB)

		first := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
		second := time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC)
		require.NoError(t, eventService.UpdateStartDate(ctx, admin.ID, first))
		require.NoError(t, eventService.UpdateStartDate(ctx, admin.ID, second))

		start := eventService.StartDate(ctx)
		assert.True(t, start.Equal(second), "expected %v, got %v", second, start)
	})
}

func TestEventService_Timing(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	eventService := newEventService(t, testDB)
	ctx := context.Background()

	testDB.Truncate(t)
	admin, _ := testutil.NewAdminBuilder().Build(t, testDB.DB)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, eventService.UpdateStartDate(ctx, admin.ID, start))

	timing := eventService.Timing(ctx, start.Add(36*time.Hour))
	assert.True(t, timing.IsStarted)
	assert.False(t, timing.IsEnded)
	assert.Equal(t, 1, timing.DayIdx)
	assert.Equal(t, 50, timing.Progress)
	assert.Equal(t, 36, timing.HoursElapsed)
}

func TestEventService_Themes(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	eventService := newEventService(t, testDB)
	ctx := context.Background()

	t.Run("serves defaults with no overrides", func(t *testing.T) {
		testDB.Truncate(t)

		themes, err := eventService.Themes(ctx)
		require.NoError(t, err)
		require.Len(t, themes, len(domain.ThemeBlocks))

		defaults := domain.DefaultThemes()
		for i, block := range domain.ThemeBlocks {
			assert.Equal(t, block, themes[i].HourBlock)
			assert.Equal(t, defaults[block].Title, themes[i].Title)
			assert.NotEmpty(t, themes[i].PointList())
		}
	})

	t.Run("override merges field by field", func(t *testing.T) {
		testDB.Truncate(t)

		require.NoError(t, eventService.UpdateTheme(ctx, &domain.PrayerTheme{
			HourBlock: 6,
			Title:     "Revival in the Morning Watch",
		}))

		theme, err := eventService.Theme(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, "Revival in the Morning Watch", theme.Title)

		defaults := domain.DefaultThemes()
		defaultTheme := defaults[6]
		assert.Equal(t, defaultTheme.Scripture, theme.Scripture)
		assert.Equal(t, defaultTheme.PrimaryColor, theme.PrimaryColor)
		assert.Equal(t, defaultTheme.PointList(), theme.PointList())
	})

	t.Run("any hour maps to its block", func(t *testing.T) {
		testDB.Truncate(t)

		theme, err := eventService.Theme(ctx, 17)
		require.NoError(t, err)
		assert.Equal(t, 12, theme.HourBlock)
	})
}
