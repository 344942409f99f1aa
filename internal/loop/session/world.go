package session

import "github.com/tomz197/astroops/internal/object"

// World holds every entity of a session, one typed collection per kind.
// Entities spawned during a tick are appended immediately; the step iterates
// in reverse index order so appended entries are not visited until the next
// tick.
type World struct {
	Ship      *object.Ship
	Bullets   []*object.Bullet
	Asteroids []*object.Asteroid
	Particles []*object.Particle
	Field     object.Field
}

// Compile-time check that World implements object.Spawner.
var _ object.Spawner = (*World)(nil)

// Spawn adds an object to the collection of its kind.
func (w *World) Spawn(obj object.Object) {
	switch o := obj.(type) {
	case *object.Bullet:
		w.Bullets = append(w.Bullets, o)
	case *object.Asteroid:
		w.Asteroids = append(w.Asteroids, o)
	case *object.Particle:
		w.Particles = append(w.Particles, o)
	case *object.Ship:
		w.Ship = o
	}
}

// reset empties all collections, returning pooled particles.
func (w *World) reset() {
	for _, p := range w.Particles {
		p.Release()
	}
	clear(w.Bullets)
	clear(w.Asteroids)
	clear(w.Particles)
	w.Ship = nil
	w.Bullets = w.Bullets[:0]
	w.Asteroids = w.Asteroids[:0]
	w.Particles = w.Particles[:0]
}

// Objects calls fn for every entity in draw order: particles, asteroids,
// bullets, then the ship.
func (w *World) Objects(fn func(object.Object)) {
	for _, p := range w.Particles {
		fn(p)
	}
	for _, a := range w.Asteroids {
		fn(a)
	}
	for _, b := range w.Bullets {
		fn(b)
	}
	if w.Ship != nil {
		fn(w.Ship)
	}
}

// removeBullet deletes index i keeping order.
func (w *World) removeBullet(i int) {
	copy(w.Bullets[i:], w.Bullets[i+1:])
	w.Bullets[len(w.Bullets)-1] = nil
	w.Bullets = w.Bullets[:len(w.Bullets)-1]
}

// removeAsteroid deletes index i keeping order.
func (w *World) removeAsteroid(i int) {
	copy(w.Asteroids[i:], w.Asteroids[i+1:])
	w.Asteroids[len(w.Asteroids)-1] = nil
	w.Asteroids = w.Asteroids[:len(w.Asteroids)-1]
}

// removeParticle deletes index i keeping order and returns it to its pool.
func (w *World) removeParticle(i int) {
	p := w.Particles[i]
	copy(w.Particles[i:], w.Particles[i+1:])
	w.Particles[len(w.Particles)-1] = nil
	w.Particles = w.Particles[:len(w.Particles)-1]
	object.ReleaseObject(p)
}
