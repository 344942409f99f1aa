package object

import (
	"sync"

	"github.com/tomz197/astroops/internal/draw"
	"github.com/tomz197/astroops/internal/loop/config"
	"github.com/tomz197/astroops/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// ParticleKind tags what emitted a particle.
type ParticleKind int

const (
	ParticleThrust ParticleKind = iota // Engine trail
	ParticleDebris                     // Explosion fragment
)

// Particle is a short-lived visual effect. It never collides.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity
	Life    float64 // Seconds remaining
	MaxLife float64 // Initial lifetime (for fade calculation)
	Kind    ParticleKind
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, life float64, kind ParticleKind) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Life:    life,
		MaxLife: life,
		Kind:    kind,
	}
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnDebris emits count debris particles at (x, y) with per-axis speed in
// [-speed, speed) and life in [lifeMin, lifeMax).
func SpawnDebris(ctx UpdateContext, x, y float64, count int, speed, lifeMin, lifeMax float64) {
	if ctx.Spawner == nil {
		return
	}
	for i := 0; i < count; i++ {
		vx := physics.RandomRange(ctx.Rand, -speed, speed)
		vy := physics.RandomRange(ctx.Rand, -speed, speed)
		life := physics.RandomRange(ctx.Rand, lifeMin, lifeMax)
		ctx.Spawner.Spawn(NewParticle(x, y, vx, vy, life, ParticleDebris))
	}
}

// Update moves the particle and checks lifetime.
// The velocity decay is a fixed factor per tick.
func (p *Particle) Update(ctx UpdateContext) bool {
	dt := ctx.DT

	p.Life -= dt
	p.X += p.VX * dt
	p.Y += p.VY * dt
	ctx.Field.WrapPosition(&p.X, &p.Y)
	p.VX *= config.ParticleDecay
	p.VY *= config.ParticleDecay

	return p.Life <= 0
}

// Draw renders the particle as a short streak opposite its motion.
func (p *Particle) Draw(ctx DrawContext) {
	// Skip faded particles (< 25% lifetime)
	if p.MaxLife > 0 && p.Life/p.MaxLife < 0.25 {
		return
	}
	if p.Kind == ParticleThrust {
		ctx.Canvas.SetFloat(p.X, p.Y)
		return
	}
	head := draw.Point{X: p.X, Y: p.Y}
	tail := draw.Point{X: p.X - p.VX*0.05, Y: p.Y - p.VY*0.05}
	ctx.Canvas.DrawLine(head, tail)
}
