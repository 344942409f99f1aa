package object

import (
	"math"

	"github.com/tomz197/astroops/internal/loop/config"
)

// Bullet is a projectile fired by the ship.
type Bullet struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	Life   float64 // Seconds remaining before removal
	Radius float64 // Collision radius
}

// NewBullet creates a bullet at (x, y) traveling in direction angle.
// The bullet inherits the shooter's velocity plus the muzzle speed.
func NewBullet(x, y, angle, shooterVX, shooterVY float64) *Bullet {
	return &Bullet{
		X:      x,
		Y:      y,
		VX:     shooterVX + math.Cos(angle)*config.MuzzleSpeed,
		VY:     shooterVY + math.Sin(angle)*config.MuzzleSpeed,
		Life:   config.BulletLife,
		Radius: config.BulletRadius,
	}
}

// Expired reports whether the bullet has run out of life.
func (b *Bullet) Expired() bool {
	return b.Life <= 0
}

// Update moves the bullet and burns down its lifetime.
func (b *Bullet) Update(ctx UpdateContext) bool {
	dt := ctx.DT

	b.Life -= dt
	b.X += b.VX * dt
	b.Y += b.VY * dt
	ctx.Field.WrapPosition(&b.X, &b.Y)

	return b.Expired()
}

// Draw renders the bullet as a single pixel.
func (b *Bullet) Draw(ctx DrawContext) {
	ctx.Canvas.SetFloat(b.X, b.Y)
}
