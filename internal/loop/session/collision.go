package session

import (
	"github.com/tomz197/astroops/internal/loop/config"
	"github.com/tomz197/astroops/internal/object"
	"github.com/tomz197/astroops/internal/physics"
)

// resolveBulletHits destroys every asteroid touched by a bullet. Asteroids
// are scanned in reverse order; for each one the first overlapping bullet, also
// scanned in reverse, takes it out. Fragments are appended past the scan and
// only collide from the next tick on.
func (s *Session) resolveBulletHits(ctx object.UpdateContext) {
	w := &s.world
	for i := len(w.Asteroids) - 1; i >= 0; i-- {
		a := w.Asteroids[i]
		for j := len(w.Bullets) - 1; j >= 0; j-- {
			b := w.Bullets[j]
			if !physics.CirclesOverlap(b.X, b.Y, b.Radius, a.X, a.Y, a.Radius) {
				continue
			}
			s.Play(object.CueExplosion)
			object.SpawnDebris(ctx, b.X, b.Y, config.BulletDebrisCount, config.BulletDebrisSpeed,
				config.BulletDebrisLifeMin, config.BulletDebrisLifeMax)
			w.removeBullet(j)
			w.removeAsteroid(i)
			a.Split(ctx)
			s.stats.Score += a.Score()
			break
		}
	}
}

// resolveShipHit handles at most one ship collision per tick.
func (s *Session) resolveShipHit(ctx object.UpdateContext) {
	ship := s.world.Ship
	if ship == nil {
		return
	}
	for _, a := range s.world.Asteroids {
		if physics.CirclesOverlap(ship.X, ship.Y, ship.Radius, a.X, a.Y, a.Radius*config.ShipHitboxScale) {
			s.hitShip(ctx)
			return
		}
	}
}

// HitShip applies an asteroid hit to the ship as if a collision had occurred.
// It is a no-op unless the session is Playing.
func (s *Session) HitShip() {
	if s.state != StatePlaying {
		return
	}
	s.hitShip(s.updateContext(0, object.Input{}))
}

func (s *Session) hitShip(ctx object.UpdateContext) {
	if s.world.Ship == nil {
		return
	}
	if !s.world.Ship.OnHit(ctx, &s.stats.Lives) {
		return
	}
	s.logger.Debug("ship destroyed", "lives", s.stats.Lives)
	if s.stats.Lives < 0 {
		s.gameOver()
	}
}
