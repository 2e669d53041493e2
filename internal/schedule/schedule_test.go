package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yfcm/prayer-chain/internal/schedule"
)

var start = time.Date(2026, time.January, 29, 0, 0, 0, 0, time.UTC)

func TestDerive_BeforeStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
	}{
		{"one second before", start.Add(-time.Second)},
		{"one day before", start.Add(-24 * time.Hour)},
		{"one week before", start.Add(-7 * 24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.Derive(start, tt.now)
			assert.False(t, got.IsStarted)
			assert.False(t, got.IsEnded)
			assert.Equal(t, 0, got.Progress)
			assert.Equal(t, 0, got.DayIdx)
			assert.NotEmpty(t, got.Countdown)
		})
	}
}

func TestDerive_AfterEnd(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
	}{
		{"just after 72h", start.Add(72*time.Hour + time.Second)},
		{"a day after", start.Add(96 * time.Hour)},
		{"a month after", start.Add(30 * 24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.Derive(start, tt.now)
			assert.True(t, got.IsStarted)
			assert.True(t, got.IsEnded)
			assert.Equal(t, 100, got.Progress)
			assert.Equal(t, 2, got.DayIdx, "day index clamps to the last day")
			assert.Empty(t, got.Countdown)
		})
	}
}

func TestDerive_ProgressMonotonic(t *testing.T) {
	prev := -1
	for now := start.Add(-2 * time.Hour); now.Before(start.Add(80 * time.Hour)); now = now.Add(30 * time.Minute) {
		got := schedule.Derive(start, now)
		assert.GreaterOrEqual(t, got.Progress, prev, "progress must not decrease at %s", now)
		assert.GreaterOrEqual(t, got.Progress, 0)
		assert.LessOrEqual(t, got.Progress, 100)
		prev = got.Progress
	}
}

func TestDerive_DayIdx(t *testing.T) {
	tests := []struct {
		hoursElapsed int
		wantDay      int
	}{
		{0, 0},
		{5, 0},
		{23, 0},
		{24, 1},
		{47, 1},
		{48, 2},
		{71, 2},
		{72, 2},
		{100, 2},
	}

	for _, tt := range tests {
		got := schedule.Derive(start, start.Add(time.Duration(tt.hoursElapsed)*time.Hour))
		assert.Equal(t, tt.hoursElapsed, got.HoursElapsed)
		assert.Equal(t, tt.wantDay, got.DayIdx, "hoursElapsed=%d", tt.hoursElapsed)
	}
}

func TestDerive_MidEventScenario(t *testing.T) {
	// 2026-01-29T00:00 start, observed 2026-01-30T06:00.
	now := time.Date(2026, time.January, 30, 6, 0, 0, 0, time.UTC)
	got := schedule.Derive(start, now)

	assert.True(t, got.IsStarted)
	assert.False(t, got.IsEnded)
	assert.Equal(t, 30, got.HoursElapsed)
	assert.Equal(t, 1, got.DayIdx)
	assert.Equal(t, 41, got.Progress)
	assert.Equal(t, 6, got.HourIdx)
}

func TestDerive_HourLabelFollowsWallClock(t *testing.T) {
	// Event started 30h ago, but the label tracks the clock hour of "now".
	now := time.Date(2026, time.January, 30, 6, 30, 0, 0, time.UTC)
	got := schedule.Derive(start, now)
	assert.Equal(t, "6:00 AM - 7:00 AM", got.HourLabel)
}

func TestHourLabel(t *testing.T) {
	tests := []struct {
		hourIdx int
		want    string
	}{
		{0, "12:00 AM - 1:00 AM"},
		{11, "11:00 AM - 12:00 PM"},
		{12, "12:00 PM - 1:00 PM"},
		{23, "11:00 PM - 12:00 AM"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, schedule.HourLabel(tt.hourIdx))
	}
}

func TestDerive_ExactBoundaries(t *testing.T) {
	atStart := schedule.Derive(start, start)
	assert.True(t, atStart.IsStarted)
	assert.False(t, atStart.IsEnded)
	assert.Equal(t, 0, atStart.Progress)

	atEnd := schedule.Derive(start, start.Add(72*time.Hour))
	assert.True(t, atEnd.IsStarted)
	assert.False(t, atEnd.IsEnded, "end is exclusive: now must be strictly after start+72h")
	assert.Equal(t, 100, atEnd.Progress)
}
