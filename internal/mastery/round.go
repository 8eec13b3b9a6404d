package mastery

import "math"

// Round rounds x to places decimals, halves away from zero
func Round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
