package animator

import "math"

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

// wrap maps t into [0, duration).
func wrap(t, duration float32) float32 {
	t = float32(math.Mod(float64(t), float64(duration)))
	if t < 0 {
		t += duration
	}
	return t
}
