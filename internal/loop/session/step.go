package session

import (
	"github.com/tomz197/astroops/internal/input"
	"github.com/tomz197/astroops/internal/loop/config"
)

// Step advances the simulation by dt seconds. It does nothing unless the
// session is Playing.
func (s *Session) Step(dt float64, controls input.Controls) {
	if s.state != StatePlaying {
		return
	}
	s.readField()
	ctx := s.updateContext(dt, controls)
	w := &s.world

	if w.Ship != nil {
		w.Ship.Update(ctx)
	}

	for i := len(w.Bullets) - 1; i >= 0; i-- {
		if w.Bullets[i].Update(ctx) {
			w.removeBullet(i)
		}
	}

	for _, a := range w.Asteroids {
		a.Update(ctx)
	}

	for i := len(w.Particles) - 1; i >= 0; i-- {
		if w.Particles[i].Update(ctx) {
			w.removeParticle(i)
		}
	}

	s.resolveBulletHits(ctx)
	s.resolveShipHit(ctx)

	if s.state == StatePlaying && len(w.Asteroids) == 0 {
		s.nextLevel()
	}
}

// nextLevel advances the level, grants the bonus life and spawns the wave.
func (s *Session) nextLevel() {
	s.stats.Level++
	if s.stats.Level%config.BonusEvery == 0 {
		s.stats.Lives = min(config.MaxLives, s.stats.Lives+1)
	}
	s.logger.Debug("level complete", "level", s.stats.Level, "lives", s.stats.Lives)
	s.spawnLevel()
}

// spawnLevel spawns the opening wave of the current level clear of the ship.
func (s *Session) spawnLevel() {
	ctx := s.updateContext(0, input.Controls{})
	x, y := s.world.Field.Center()
	if s.world.Ship != nil {
		x, y = s.world.Ship.GetPosition()
	}
	s.spawner.SpawnWave(ctx, s.stats.Level, x, y)
}
