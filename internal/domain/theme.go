package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ThemeBlocks are the four six-hour prayer blocks of a day, keyed by the
// wall-clock hour they begin at.
var ThemeBlocks = []int{0, 6, 12, 18}

// PrayerTheme is the focus assigned to a six-hour block. Stored rows are
// admin overrides; missing fields fall back to the built-in defaults.
type PrayerTheme struct {
	HourBlock       int            `json:"hourBlock" gorm:"primary_key"`
	Title           string         `json:"title"`
	Scripture       string         `json:"scripture"`
	Points          datatypes.JSON `json:"points"`
	PrimaryColor    string         `json:"primaryColor"`
	GlowColor       string         `json:"glowColor"`
	BackgroundColor string         `json:"backgroundColor"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// PointList decodes the prayer points array.
func (t *PrayerTheme) PointList() []string {
	var points []string
	if len(t.Points) == 0 {
		return nil
	}
	if err := json.Unmarshal(t.Points, &points); err != nil {
		return nil
	}
	return points
}

// ThemeBlockForHour maps a wall-clock hour to its block key.
func ThemeBlockForHour(hour int) int {
	switch {
	case hour >= 0 && hour < 6:
		return 0
	case hour < 12:
		return 6
	case hour < 18:
		return 12
	default:
		return 18
	}
}

func mustPoints(points ...string) datatypes.JSON {
	b, _ := json.Marshal(points)
	return datatypes.JSON(b)
}

// DefaultThemes returns the built-in theme for every block.
func DefaultThemes() map[int]PrayerTheme {
	return map[int]PrayerTheme{
		0: {
			HourBlock: 0,
			Title:     "Personal Purification & Consecration",
			Scripture: "Psalm 51:10 - Create in me a clean heart, O God; and renew a right spirit within me.",
			Points: mustPoints(
				"Repentance from personal and secret sins.",
				"Fresh hunger for the Word and Presence of God.",
				"Yielding our members as instruments of righteousness.",
			),
			PrimaryColor:    "#7c3aed",
			GlowColor:       "#4c1d95",
			BackgroundColor: "rgba(124, 58, 237, 0.08)",
		},
		6: {
			HourBlock: 6,
			Title:     "The Church & Global Harvest",
			Scripture: "Matthew 16:18 - I will build my church; and the gates of hell shall not prevail against it.",
			Points: mustPoints(
				"Spiritual awakening in the local church.",
				"Boldness for missionaries in unreached territories.",
				"Unity among the Body of Christ.",
			),
			PrimaryColor:    "#f59e0b",
			GlowColor:       "#b45309",
			BackgroundColor: "rgba(245, 158, 11, 0.08)",
		},
		12: {
			HourBlock: 12,
			Title:     "National Transformation & Leadership",
			Scripture: "2 Chronicles 7:14 - If my people... shall humble themselves and pray... then will I hear from heaven and will heal their land.",
			Points: mustPoints(
				"Wisdom for leaders and policy makers.",
				"Peace and security within our borders.",
				"Economic restoration and justice for the poor.",
			),
			PrimaryColor:    "#f97316",
			GlowColor:       "#ea580c",
			BackgroundColor: "rgba(249, 115, 22, 0.08)",
		},
		18: {
			HourBlock: 18,
			Title:     "Families & The Next Generation",
			Scripture: "Malachi 4:6 - And he shall turn the heart of the fathers to the children, and the heart of the children to their fathers.",
			Points: mustPoints(
				"Restoration of broken homes and marriages.",
				"Protection of the youth from negative influences.",
				"Transmission of faith to the coming generation.",
			),
			PrimaryColor:    "#dc2626",
			GlowColor:       "#991b1b",
			BackgroundColor: "rgba(220, 38, 38, 0.08)",
		},
	}
}

// MergeTheme overlays a stored override on the default for its block,
// field by field. Empty override fields keep the default.
func MergeTheme(base PrayerTheme, override *PrayerTheme) PrayerTheme {
	if override == nil {
		return base
	}
	merged := base
	if override.Title != "" {
		merged.Title = override.Title
	}
	if override.Scripture != "" {
		merged.Scripture = override.Scripture
	}
	if len(override.PointList()) > 0 {
		merged.Points = override.Points
	}
	if override.PrimaryColor != "" {
		merged.PrimaryColor = override.PrimaryColor
	}
	if override.GlowColor != "" {
		merged.GlowColor = override.GlowColor
	}
	if override.BackgroundColor != "" {
		merged.BackgroundColor = override.BackgroundColor
	}
	merged.UpdatedAt = override.UpdatedAt
	return merged
}
