package shape

import "math"

// polar returns the offset of a point at angle degrees (clockwise from 3
// o'clock, y down) and distance r.
func polar(deg, r float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return r * math.Cos(rad), r * math.Sin(rad)
}
