package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/astroops/internal/loop/config"
	"github.com/tomz197/astroops/internal/physics"
)

// AsteroidSize represents the size tier of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall  AsteroidSize = 1
	AsteroidMedium AsteroidSize = 2
	AsteroidLarge  AsteroidSize = 3
)

// Radius returns the collision radius for the tier.
func (s AsteroidSize) Radius() float64 {
	switch s {
	case AsteroidLarge:
		return config.AsteroidRadiusLarge
	case AsteroidMedium:
		return config.AsteroidRadiusMedium
	default:
		return config.AsteroidRadiusSmall
	}
}

// SpeedFactor scales the base speed range. Smaller tiers move faster.
func (s AsteroidSize) SpeedFactor() float64 {
	return float64(4 - s)
}

// Asteroid is a destructible space rock.
type Asteroid struct {
	X, Y          float64      // Position (center)
	VX, VY        float64      // Velocity
	Angle         float64      // Current rotation angle
	RotationSpeed float64      // Rotation speed (radians/sec)
	Size          AsteroidSize // Size tier
	Radius        float64      // Collision radius
	Vertices      []float64    // Vertex distances from center, evenly spaced in angle
}

// NewAsteroid creates an asteroid at (x, y) with a random heading, spin and
// outline. The outline is generated here once and never changes.
func NewAsteroid(rng *rand.Rand, x, y float64, size AsteroidSize) *Asteroid {
	radius := size.Radius()
	speed := physics.RandomRange(rng, config.AsteroidMinSpeed, config.AsteroidMaxSpeed) * size.SpeedFactor()
	heading := physics.RandomRange(rng, 0, 2*math.Pi)

	a := &Asteroid{
		X:             x,
		Y:             y,
		VX:            math.Cos(heading) * speed,
		VY:            math.Sin(heading) * speed,
		RotationSpeed: physics.RandomRange(rng, -1, 1),
		Angle:         physics.RandomRange(rng, 0, 2*math.Pi),
		Size:          size,
		Radius:        radius,
	}

	numVerts := physics.RandomInt(rng, config.AsteroidMinVertices, config.AsteroidMaxVertices)
	a.Vertices = make([]float64, numVerts)
	for i := range a.Vertices {
		a.Vertices[i] = radius * physics.RandomRange(rng, config.AsteroidShapeMin, config.AsteroidShapeMax)
	}
	return a
}

// Update moves the asteroid and handles rotation.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	dt := ctx.DT

	a.X += a.VX * dt
	a.Y += a.VY * dt
	ctx.Field.WrapPosition(&a.X, &a.Y)
	a.Angle += a.RotationSpeed * dt

	return false
}

// Split spawns the two fragments of a destroyed asteroid. The smallest tier
// leaves nothing behind.
func (a *Asteroid) Split(ctx UpdateContext) {
	if a.Size <= AsteroidSmall {
		return
	}
	for i := 0; i < 2; i++ {
		ctx.spawn(NewAsteroid(ctx.Rand, a.X, a.Y, a.Size-1))
	}
}

// Score returns the points awarded for destroying the asteroid.
func (a *Asteroid) Score() int {
	switch a.Size {
	case AsteroidLarge:
		return config.ScoreLargeAsteroid
	case AsteroidMedium:
		return config.ScoreMediumAsteroid
	case AsteroidSmall:
		return config.ScoreSmallAsteroid
	default:
		return 0
	}
}

// Draw renders the asteroid as an irregular polygon.
func (a *Asteroid) Draw(ctx DrawContext) {
	positions := WrapCopies(a.X, a.Y, a.Radius*config.AsteroidShapeMax, ctx.Field)
	for i := 0; i < positions.Count; i++ {
		pos := positions.Positions[i]
		a.drawAt(ctx, pos.X, pos.Y)
	}
}

// drawAt draws the asteroid at a specific position.
func (a *Asteroid) drawAt(ctx DrawContext, x, y float64) {
	numVerts := len(a.Vertices)

	// Reusable buffer from the canvas avoids per-frame allocations.
	points := ctx.Canvas.BorrowPoints(numVerts)
	for i, dist := range a.Vertices {
		points[i] = rotate(x, y, dist, 0, a.Angle+float64(i)*2*math.Pi/float64(numVerts))
	}
	ctx.Canvas.DrawPolygon(points)
}
