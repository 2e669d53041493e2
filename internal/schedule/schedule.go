// Package schedule derives event timing from the configurable start date and
// wall-clock time. All functions are pure so the same derivation runs in
// handlers, services, and tests without touching storage.
package schedule

import (
	"fmt"
	"time"
)

// TotalHours is the length of the prayer chain.
const TotalHours = 72

// DefaultStartDate is used whenever no start date has been configured.
var DefaultStartDate = time.Date(2026, time.January, 29, 0, 0, 0, 0, time.Local)

// Timing is the full derived state of the event clock at a single instant.
type Timing struct {
	StartDate    time.Time `json:"startDate"`
	Now          time.Time `json:"now"`
	IsStarted    bool      `json:"isStarted"`
	IsEnded      bool      `json:"isEnded"`
	Progress     int       `json:"progress"`
	HoursElapsed int       `json:"hoursElapsed"`
	DayIdx       int       `json:"dayIdx"`
	HourIdx      int       `json:"hourIdx"`
	HourLabel    string    `json:"hourLabel"`
	Countdown    string    `json:"countdown,omitempty"`
}

// Derive computes the timing snapshot for now against start.
//
// The current watch label follows the wall clock, not the event's elapsed
// hours: slots stay aligned to calendar hours even if the chain starts
// mid-day. HoursElapsed uses the absolute difference, so before the start it
// counts down the same way the original countdown did.
func Derive(start, now time.Time) Timing {
	end := start.Add(TotalHours * time.Hour)

	t := Timing{
		StartDate: start,
		Now:       now,
		IsStarted: !now.Before(start),
		IsEnded:   now.After(end),
	}

	diff := now.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	t.HoursElapsed = int(diff / time.Hour)

	switch {
	case !t.IsStarted:
		t.Progress = 0
	case t.IsEnded:
		t.Progress = 100
	default:
		t.Progress = int(now.Sub(start) * 100 / (TotalHours * time.Hour))
	}

	if t.IsStarted {
		t.DayIdx = t.HoursElapsed / 24
		if t.DayIdx > 2 {
			t.DayIdx = 2
		}
	}

	t.HourIdx = now.Hour()
	t.HourLabel = HourLabel(t.HourIdx)

	if !t.IsStarted {
		t.Countdown = countdown(diff)
	}

	return t
}

// HourLabel formats a slot's display range, e.g. "12:00 AM - 1:00 AM".
func HourLabel(hourIdx int) string {
	return fmt.Sprintf("%s - %s", clockLabel(hourIdx), clockLabel(hourIdx+1))
}

func clockLabel(hour int) string {
	hour = hour % 24
	h := hour % 12
	if h == 0 {
		h = 12
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%d:00 %s", h, ampm)
}

func countdown(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}
