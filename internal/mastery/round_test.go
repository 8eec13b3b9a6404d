package mastery

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		places   int
		expected float64
	}{
		{name: "one third", x: 1.0 / 3.0, places: 3, expected: 0.333},
		{name: "two thirds", x: 2.0 / 3.0, places: 3, expected: 0.667},
		{name: "half up", x: 2.5, places: 0, expected: 3},
		{name: "negative half away from zero", x: -2.5, places: 0, expected: -3},
		{name: "two places", x: 3.456, places: 2, expected: 3.46},
		{name: "exact", x: 3.5, places: 2, expected: 3.5},
		{name: "zero", x: 0, places: 3, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.x, tt.places); got != tt.expected {
				t.Errorf("Round(%v, %d) = %v, want %v", tt.x, tt.places, got, tt.expected)
			}
		})
	}
}

func TestRatioZeroDenominator(t *testing.T) {
	if got := ratio(3, 0); got != 0 {
		t.Errorf("ratio(3, 0) = %v, want 0", got)
	}
}
