// Package stats derives streak and completion statistics from
// already-fetched completion records. All functions are pure: callers
// inject the reference time, nothing here touches the clock or the store.
package stats

import (
	"math"
	"time"

	"cadence/internal/models"
)

// StreakWindowDays bounds how far back Streak walks. A streak can never be
// reported longer than this; the cap is intentional, not configurable.
const StreakWindowDays = 365

// Day normalizes a timestamp to UTC midnight of its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CompletedOn reports whether a completed record exists for the calendar
// day of ref. Matching is exact normalized-date equality, not a range.
func CompletedOn(completions []models.HabitCompletion, ref time.Time) bool {
	day := Day(ref)
	for i := range completions {
		if completions[i].Completed && Day(completions[i].Date).Equal(day) {
			return true
		}
	}
	return false
}

// Streak counts consecutive completed days ending on the day of now,
// walking backward until the first gap or the window cap. A gap today
// yields 0 regardless of history.
func Streak(completions []models.HabitCompletion, now time.Time) int {
	streak := 0
	for i := 0; i < StreakWindowDays; i++ {
		if !CompletedOn(completions, now.AddDate(0, 0, -i)) {
			break
		}
		streak++
	}
	return streak
}

// SuccessRate returns the integer percentage of days completed since
// creation. Non-positive day counts yield 0.
func SuccessRate(totalCompletions, daysSinceCreation int) int {
	if daysSinceCreation <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(totalCompletions) / float64(daysSinceCreation)))
}

// Summarize computes the full stats payload for a habit. The habit's
// Completions must already be loaded.
func Summarize(h *models.Habit, now time.Time) *models.HabitStats {
	total := 0
	for i := range h.Completions {
		if h.Completions[i].Completed {
			total++
		}
	}
	days := int(Day(now).Sub(Day(h.CreatedAt)).Hours() / 24)
	return &models.HabitStats{
		Streak:           Streak(h.Completions, now),
		CompletedToday:   CompletedOn(h.Completions, now),
		SuccessRate:      SuccessRate(total, days),
		TotalCompletions: total,
	}
}
