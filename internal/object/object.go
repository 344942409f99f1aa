package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/astroops/internal/draw"
	"github.com/tomz197/astroops/internal/input"
	"github.com/tomz197/astroops/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the held controls of the input package.
type Input = input.Controls

// Cue is a discrete event an audio collaborator may turn into sound.
type Cue int

const (
	CueFire Cue = iota
	CueThrust
	CueExplosion
	CueHyperspace
)

// String returns a short name for logging.
func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueThrust:
		return "thrust"
	case CueExplosion:
		return "explosion"
	case CueHyperspace:
		return "hyperspace"
	default:
		return "unknown"
	}
}

// CueSink receives audio cues. Play must not block.
type CueSink interface {
	Play(cue Cue)
}

// UpdateContext provides all the information an object needs during one tick.
type UpdateContext struct {
	DT        float64 // Tick length in seconds
	Input     Input
	Field     Field
	Rand      *rand.Rand
	Spawner   Spawner
	Cues      CueSink
	Asteroids []*Asteroid // Current asteroid collection (read-only)
}

func (ctx UpdateContext) spawn(obj Object) {
	if ctx.Spawner != nil {
		ctx.Spawner.Spawn(obj)
	}
}

func (ctx UpdateContext) cue(c Cue) {
	if ctx.Cues != nil {
		ctx.Cues.Play(c)
	}
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	Field  Field
}

// Field is the toroidal play-field. Coordinates live in [0, Width) x [0, Height).
type Field struct {
	Width  float64
	Height float64
}

// WrapPosition wraps x and y coordinates around the field boundaries.
func (f Field) WrapPosition(x, y *float64) {
	*x = physics.Wrap(*x, f.Width)
	*y = physics.Wrap(*y, f.Height)
}

// Center returns the middle of the field.
func (f Field) Center() (float64, float64) {
	return f.Width / 2, f.Height / 2
}

// RandomPoint returns a uniformly distributed point inside the field.
func (f Field) RandomPoint(rng *rand.Rand) (float64, float64) {
	x := physics.RandomRange(rng, 0, f.Width)
	y := physics.RandomRange(rng, 0, f.Height)
	return x, y
}

// ScreenPositions holds up to 4 draw positions for a field-wrapped object.
// Using a fixed array avoids allocations in the hot rendering path.
type ScreenPositions struct {
	Positions [4]draw.Point
	Count     int
}

// WrapCopies returns where an object of the given radius must be drawn so that
// it shows on both sides of any edge it straddles.
func WrapCopies(x, y, radius float64, f Field) ScreenPositions {
	var result ScreenPositions
	result.Positions[0] = draw.Point{X: x, Y: y}
	result.Count = 1

	dx := 0.0
	if x-radius < 0 {
		dx = f.Width
	} else if x+radius >= f.Width {
		dx = -f.Width
	}
	dy := 0.0
	if y-radius < 0 {
		dy = f.Height
	} else if y+radius >= f.Height {
		dy = -f.Height
	}

	if dx != 0 {
		result.Positions[result.Count] = draw.Point{X: x + dx, Y: y}
		result.Count++
	}
	if dy != 0 {
		result.Positions[result.Count] = draw.Point{X: x, Y: y + dy}
		result.Count++
	}
	if dx != 0 && dy != 0 {
		result.Positions[result.Count] = draw.Point{X: x + dx, Y: y + dy}
		result.Count++
	}
	return result
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by ctx.DT. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink returns true if an object with remaining invincibility
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0 (no protection).
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(math.Floor(remainingTime * frequency))
	return phase%2 != 0
}

// rotate returns the point (lx, ly) rotated by angle and translated to (cx, cy).
func rotate(cx, cy, lx, ly, angle float64) draw.Point {
	sin, cos := math.Sincos(angle)
	return draw.Point{
		X: cx + lx*cos - ly*sin,
		Y: cy + lx*sin + ly*cos,
	}
}
