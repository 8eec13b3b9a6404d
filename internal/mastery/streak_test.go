package mastery

import (
	"testing"
	"time"

	"masterylog/internal/models"
)

func TestComputeStreak(t *testing.T) {
	loc := time.FixedZone("GMT+7", 7*60*60)
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, loc)
	windowStart := now.AddDate(-1, 0, 0)

	at := func(daysAgo int) models.Attempt {
		return models.Attempt{AttemptedAt: now.AddDate(0, 0, -daysAgo).UTC()}
	}

	tests := []struct {
		name     string
		attempts []models.Attempt
		expected int
	}{
		{
			name:     "no attempts",
			attempts: nil,
			expected: 0,
		},
		{
			name:     "today and yesterday",
			attempts: []models.Attempt{at(0), at(1)},
			expected: 2,
		},
		{
			name:     "yesterday only",
			attempts: []models.Attempt{at(1)},
			expected: 0,
		},
		{
			name:     "gap stops the walk",
			attempts: []models.Attempt{at(0), at(1), at(3), at(4)},
			expected: 2,
		},
		{
			name:     "several on one day",
			attempts: []models.Attempt{at(0), at(0), at(0)},
			expected: 1,
		},
		{
			name:     "outside window ignored",
			attempts: []models.Attempt{at(0), {AttemptedAt: windowStart.Add(-time.Hour)}},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeStreak(tt.attempts, windowStart, now, loc)
			if result.CurrentStreak != tt.expected {
				t.Errorf("CurrentStreak = %d, want %d", result.CurrentStreak, tt.expected)
			}
		})
	}
}

func TestComputeStreakCalendar(t *testing.T) {
	loc := time.FixedZone("GMT+7", 7*60*60)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, loc)

	attempts := []models.Attempt{
		// 2025-06-14 18:30 UTC is already the 15th in GMT+7
		{AttemptedAt: time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC), Successful: true},
		{AttemptedAt: time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC)},
		{AttemptedAt: time.Date(2025, 6, 13, 12, 0, 0, 0, time.UTC), Successful: true},
		{AttemptedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Successful: true},
	}

	result := ComputeStreak(attempts, now.AddDate(-1, 0, 0), now, loc)

	if len(result.Calendar) != 2 {
		t.Fatalf("Calendar = %v, want 2 dates", result.Calendar)
	}
	if result.Calendar["2025-06-15"] != 2 {
		t.Errorf("Calendar[2025-06-15] = %d, want 2", result.Calendar["2025-06-15"])
	}
	if result.Calendar["2025-06-13"] != 1 {
		t.Errorf("Calendar[2025-06-13] = %d, want 1", result.Calendar["2025-06-13"])
	}
	if result.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2", result.SuccessCount)
	}
	if result.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", result.CurrentStreak)
	}

	days := result.Days()
	if len(days) != 2 || days[0].Date != "2025-06-13" || days[1].Date != "2025-06-15" {
		t.Errorf("Days() = %v, want sorted by date", days)
	}
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		count    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{5, 2},
		{6, 3},
		{8, 3},
		{9, 4},
		{40, 4},
	}

	for _, tt := range tests {
		if got := Intensity(tt.count); got != tt.expected {
			t.Errorf("Intensity(%d) = %d, want %d", tt.count, got, tt.expected)
		}
	}
}
