package loop

import (
	"time"

	"github.com/tomz197/astroops/internal/loop/config"
)

// fpsCounter averages the frame rate over short sampling windows.
type fpsCounter struct {
	frames  int
	elapsed float64
	fps     float64
}

// add records one frame of dt seconds.
func (f *fpsCounter) add(dt float64) {
	f.frames++
	f.elapsed += dt
	if f.elapsed >= config.FPSSampleSeconds {
		f.fps = float64(f.frames) / f.elapsed
		f.frames = 0
		f.elapsed = 0
	}
}

// inactivity tracks the last time a key was pressed. Zero limits disable it.
type inactivity struct {
	last       time.Time
	warn       time.Duration
	disconnect time.Duration
}

func (a *inactivity) touch(now time.Time) {
	a.last = now
}

// remaining returns the time left before disconnect and whether the warning
// should be shown.
func (a *inactivity) remaining(now time.Time) (time.Duration, bool) {
	if a.disconnect <= 0 {
		return 0, false
	}
	idle := now.Sub(a.last)
	return a.disconnect - idle, a.warn > 0 && idle >= a.warn
}

func (a *inactivity) expired(now time.Time) bool {
	return a.disconnect > 0 && now.Sub(a.last) >= a.disconnect
}
