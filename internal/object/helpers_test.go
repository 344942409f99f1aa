package object

import (
	"math/rand"

	"github.com/tomz197/astroops/internal/loop/config"
)

// collector is a Spawner that records everything spawned.
type collector struct {
	objects []Object
}

func (c *collector) Spawn(obj Object) {
	c.objects = append(c.objects, obj)
}

func (c *collector) bullets() []*Bullet {
	var out []*Bullet
	for _, obj := range c.objects {
		if b, ok := obj.(*Bullet); ok {
			out = append(out, b)
		}
	}
	return out
}

func (c *collector) asteroids() []*Asteroid {
	var out []*Asteroid
	for _, obj := range c.objects {
		if a, ok := obj.(*Asteroid); ok {
			out = append(out, a)
		}
	}
	return out
}

func (c *collector) particles() []*Particle {
	var out []*Particle
	for _, obj := range c.objects {
		if p, ok := obj.(*Particle); ok {
			out = append(out, p)
		}
	}
	return out
}

// cueRecorder is a CueSink that records cues in order.
type cueRecorder struct {
	cues []Cue
}

func (r *cueRecorder) Play(cue Cue) {
	r.cues = append(r.cues, cue)
}

func (r *cueRecorder) count(cue Cue) int {
	n := 0
	for _, c := range r.cues {
		if c == cue {
			n++
		}
	}
	return n
}

var testField = Field{Width: 1280, Height: 800}

func newTestContext(seed int64) (UpdateContext, *collector, *cueRecorder) {
	spawned := &collector{}
	cues := &cueRecorder{}
	ctx := UpdateContext{
		DT:      config.TickSeconds,
		Field:   testField,
		Rand:    rand.New(rand.NewSource(seed)),
		Spawner: spawned,
		Cues:    cues,
	}
	return ctx, spawned, cues
}
