package object

import (
	"math/rand"

	"github.com/tomz197/astroops/internal/loop/config"
	"github.com/tomz197/astroops/internal/physics"
)

// AsteroidSpawner places the large asteroids that open a level.
type AsteroidSpawner struct {
	safeRadius float64
	tries      int
}

// NewAsteroidSpawner creates a spawner that keeps new asteroids at least
// safeRadius away from a protected point.
func NewAsteroidSpawner(safeRadius float64) *AsteroidSpawner {
	if safeRadius < 0 {
		safeRadius = 0
	}
	return &AsteroidSpawner{
		safeRadius: safeRadius,
		tries:      config.SpawnPlacementTries,
	}
}

// WaveSize is the number of large asteroids that open the given level.
func WaveSize(level int) int {
	return config.BaseAsteroids + level
}

// SpawnWave spawns WaveSize(level) large asteroids clear of (avoidX, avoidY).
func (s *AsteroidSpawner) SpawnWave(ctx UpdateContext, level int, avoidX, avoidY float64) {
	for i := 0; i < WaveSize(level); i++ {
		x, y := s.placement(ctx.Rand, ctx.Field, avoidX, avoidY)
		ctx.spawn(NewAsteroid(ctx.Rand, x, y, AsteroidLarge))
	}
}

// placement draws random points until one is far enough from the protected
// point. After the retry budget the last candidate is used as is.
func (s *AsteroidSpawner) placement(rng *rand.Rand, f Field, avoidX, avoidY float64) (float64, float64) {
	var x, y float64
	limit := s.safeRadius * s.safeRadius
	for i := 0; i < s.tries; i++ {
		x, y = f.RandomPoint(rng)
		if physics.DistanceSquared(x, y, avoidX, avoidY) >= limit {
			break
		}
	}
	return x, y
}
