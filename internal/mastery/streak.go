package mastery

import (
	"sort"
	"time"

	"masterylog/internal/models"
)

// DateLayout is the calendar key format
const DateLayout = "2006-01-02"

// StreakSummary is the activity over a trailing window
type StreakSummary struct {
	Calendar      map[string]int
	CurrentStreak int
	SuccessCount  int
}

// DayActivity is one calendar day with its attempt count
type DayActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ComputeStreak builds the activity calendar for attempts at or after windowStart.
// Dates are taken in loc. The streak walks back from the date of now and stops at
// the first day without attempts, so a quiet today means a streak of 0.
func ComputeStreak(attempts []models.Attempt, windowStart, now time.Time, loc *time.Location) StreakSummary {
	if loc == nil {
		loc = time.UTC
	}

	summary := StreakSummary{Calendar: make(map[string]int)}
	for _, a := range attempts {
		if a.AttemptedAt.Before(windowStart) {
			continue
		}
		summary.Calendar[a.AttemptedAt.In(loc).Format(DateLayout)]++
		if a.Successful {
			summary.SuccessCount++
		}
	}

	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	for summary.Calendar[day.Format(DateLayout)] > 0 {
		summary.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}

	return summary
}

// Days returns the calendar sorted by date
func (s StreakSummary) Days() []DayActivity {
	days := make([]DayActivity, 0, len(s.Calendar))
	for date, count := range s.Calendar {
		days = append(days, DayActivity{Date: date, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// Intensity buckets a day's count into heatmap levels 0 to 4
func Intensity(count int) int {
	switch {
	case count <= 0:
		return 0
	case count < 3:
		return 1
	case count < 6:
		return 2
	case count < 9:
		return 3
	default:
		return 4
	}
}
