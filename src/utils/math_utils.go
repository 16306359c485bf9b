package utils

import "math"

// RoundFloat rounds a float64 to a specified number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// RoundToStep rounds val to the nearest multiple of step.
func RoundToStep(val float64, step int) int {
	return int(math.Round(val/float64(step))) * step
}
