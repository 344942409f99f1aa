// Package physics provides geometry helpers for a wrapping (toroidal) play-field.
package physics

import (
	"math"
	"math/rand"
)

// Wrap maps v into [0, max) using modulo arithmetic. Negative values wrap to
// the positive side. A non-positive max leaves v unchanged.
func Wrap(v, max float64) float64 {
	if max <= 0 {
		return v
	}
	v = math.Mod(v, max)
	if v < 0 {
		v += max
	}
	// math.Mod(-tiny, max) + max can round up to max itself.
	if v >= max {
		v = 0
	}
	return v
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap (touching does not count).
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// RandomRange returns a uniform sample in [lo, hi).
func RandomRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// RandomInt returns a uniform integer in [lo, hi). hi is exclusive.
func RandomInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}
