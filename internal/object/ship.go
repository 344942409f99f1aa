package object

import (
	"math"

	"github.com/tomz197/astroops/internal/draw"
	"github.com/tomz197/astroops/internal/loop/config"
	"github.com/tomz197/astroops/internal/physics"
)

// Ship is the player-controlled spaceship.
type Ship struct {
	X, Y       float64 // Position (center of ship)
	VX, VY     float64 // Velocity (momentum)
	Angle      float64 // Facing in radians (0 = pointing right, -π/2 = up)
	Radius     float64 // Collision radius
	Invincible float64 // Seconds of invulnerability remaining
	Cooldown   float64 // Seconds until the weapon may fire again
	Thrusting  bool
}

// NewShip creates a ship at the center of the field, pointing up, with spawn
// invulnerability.
func NewShip(f Field) *Ship {
	s := &Ship{}
	s.Reset(f)
	return s
}

// Reset puts the ship back into its spawn state.
func (s *Ship) Reset(f Field) {
	x, y := f.Center()
	*s = Ship{
		X:          x,
		Y:          y,
		Angle:      -math.Pi / 2,
		Radius:     config.ShipRadius,
		Invincible: config.ShipSpawnInvincible,
	}
}

// Update handles rotation, thrust, damping, movement, firing and hyperspace.
func (s *Ship) Update(ctx UpdateContext) bool {
	dt := ctx.DT

	if ctx.Input.Left {
		s.Angle -= config.ShipRotationSpeed * dt
	}
	if ctx.Input.Right {
		s.Angle += config.ShipRotationSpeed * dt
	}

	s.Thrusting = ctx.Input.Thrust
	if s.Thrusting {
		s.VX += math.Cos(s.Angle) * config.ShipThrust * dt
		s.VY += math.Sin(s.Angle) * config.ShipThrust * dt
		if ctx.Rand.Float64() < config.ShipThrustCueRate*dt {
			ctx.cue(CueThrust)
		}
		s.spawnTrail(ctx)
	}

	// Damping is expressed per 1/60 s so it holds at any tick size.
	damp := math.Pow(config.ShipDamping, dt*60)
	s.VX *= damp
	s.VY *= damp

	s.X += s.VX * dt
	s.Y += s.VY * dt
	ctx.Field.WrapPosition(&s.X, &s.Y)

	s.Cooldown -= dt
	if ctx.Input.Fire && s.Cooldown <= 0 {
		s.Shoot(ctx)
	}
	if ctx.Input.Hyper {
		s.Hyperjump(ctx)
	}
	s.Invincible -= dt

	return false
}

// spawnTrail emits one thrust particle from the back of the ship.
func (s *Ship) spawnTrail(ctx UpdateContext) {
	tailX := s.X - math.Cos(s.Angle)*s.Radius
	tailY := s.Y - math.Sin(s.Angle)*s.Radius
	vx := physics.RandomRange(ctx.Rand, -config.ThrustSpread, config.ThrustSpread) - s.VX*config.ThrustDrag
	vy := physics.RandomRange(ctx.Rand, -config.ThrustSpread, config.ThrustSpread) - s.VY*config.ThrustDrag
	life := physics.RandomRange(ctx.Rand, config.ThrustLifeMin, config.ThrustLifeMax)
	ctx.spawn(NewParticle(tailX, tailY, vx, vy, life, ParticleThrust))
}

// Shoot fires a bullet from the nose of the ship. Ignored while the weapon is
// cooling down. Returns true if a bullet was fired.
func (s *Ship) Shoot(ctx UpdateContext) bool {
	if s.Cooldown > 0 {
		return false
	}
	noseX := s.X + math.Cos(s.Angle)*s.Radius
	noseY := s.Y + math.Sin(s.Angle)*s.Radius
	ctx.spawn(NewBullet(noseX, noseY, s.Angle, s.VX, s.VY))
	s.Cooldown = config.FireCooldown
	ctx.cue(CueFire)
	return true
}

// Hyperjump teleports the ship to the first random spot that keeps clear of
// every asteroid, falling back to the field center when none of the
// candidates is safe.
func (s *Ship) Hyperjump(ctx UpdateContext) {
	ctx.cue(CueHyperspace)

	x, y := ctx.Field.Center()
	for i := 0; i < config.HyperspaceTries; i++ {
		cx, cy := ctx.Field.RandomPoint(ctx.Rand)
		if clearOfAsteroids(cx, cy, ctx.Asteroids) {
			x, y = cx, cy
			break
		}
	}

	s.X, s.Y = x, y
	s.VX, s.VY = 0, 0
	s.Invincible = config.HyperspaceInvincible
}

func clearOfAsteroids(x, y float64, asteroids []*Asteroid) bool {
	for _, a := range asteroids {
		safe := a.Radius + config.HyperspaceMargin
		if physics.DistanceSquared(x, y, a.X, a.Y) <= safe*safe {
			return false
		}
	}
	return true
}

// OnHit applies an asteroid collision. It is a no-op while the ship is
// invulnerable. Otherwise one life is taken from *lives, a debris burst is
// emitted and, if lives remain (*lives >= 0), the ship respawns at the field
// center. Returns true if the hit registered.
func (s *Ship) OnHit(ctx UpdateContext, lives *int) bool {
	if s.Invincible > 0 {
		return false
	}

	*lives--
	ctx.cue(CueExplosion)
	SpawnDebris(ctx, s.X, s.Y, config.ShipDebrisCount, config.ShipDebrisSpeed,
		config.ShipDebrisLifeMin, config.ShipDebrisLifeMax)

	if *lives >= 0 {
		s.Reset(ctx.Field)
	}
	return true
}

// Draw renders the ship as an arrowhead, plus a flame while thrusting.
// The ship blinks while invulnerable.
func (s *Ship) Draw(ctx DrawContext) {
	if !ShouldRenderBlink(s.Invincible, config.PlayerBlinkFrequency) {
		return
	}

	positions := WrapCopies(s.X, s.Y, s.Radius+10, ctx.Field)
	for i := 0; i < positions.Count; i++ {
		pos := positions.Positions[i]
		s.drawAt(ctx.Canvas, pos.X, pos.Y)
	}
}

// drawAt draws the ship hull centred at (x, y).
func (s *Ship) drawAt(c *draw.Canvas, x, y float64) {
	hull := c.BorrowPoints(4)
	hull[0] = rotate(x, y, 18, 0, s.Angle)
	hull[1] = rotate(x, y, -14, 11, s.Angle)
	hull[2] = rotate(x, y, -8, 0, s.Angle)
	hull[3] = rotate(x, y, -14, -11, s.Angle)
	c.DrawPolygon(hull)

	if s.Thrusting {
		top := rotate(x, y, -14, 6, s.Angle)
		tip := rotate(x, y, -25, 0, s.Angle)
		bottom := rotate(x, y, -14, -6, s.Angle)
		c.DrawLine(top, tip)
		c.DrawLine(tip, bottom)
	}
}

// GetPosition returns the ship's center position.
func (s *Ship) GetPosition() (float64, float64) {
	return s.X, s.Y
}
