package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tomz197/astroops/internal/input"
	"github.com/tomz197/astroops/internal/loop/config"
	"github.com/tomz197/astroops/internal/object"
	"github.com/tomz197/astroops/internal/physics"
)

const tick = config.TickSeconds

type memStore struct {
	score     int
	saves     int
	loadErr   error
	saveErr   error
	lastSaved int
}

func (m *memStore) Load() (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	return m.score, nil
}

func (m *memStore) Save(score int) error {
	m.saves++
	m.lastSaved = score
	if m.saveErr != nil {
		return m.saveErr
	}
	m.score = score
	return nil
}

type cueLog struct {
	cues []object.Cue
}

func (c *cueLog) Play(cue object.Cue) {
	c.cues = append(c.cues, cue)
}

func fixedField() (float64, float64) {
	return 1280, 800
}

// newPlaying returns a started session with an empty sky around the ship.
func newPlaying(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Field == nil {
		opts.Field = fixedField
	}
	s := New(opts)
	s.Start()
	if s.State() != StatePlaying {
		t.Fatalf("state after Start = %v, want playing", s.State())
	}
	s.world.Asteroids = s.world.Asteroids[:0]
	return s
}

// still returns a motionless asteroid.
func still(x, y float64, size object.AsteroidSize) *object.Asteroid {
	return &object.Asteroid{X: x, Y: y, Size: size, Radius: size.Radius(), Vertices: []float64{1, 1, 1}}
}

// corners fills the field with four large asteroids far from the ship.
func corners() []*object.Asteroid {
	return []*object.Asteroid{
		still(100, 100, object.AsteroidLarge),
		still(1100, 100, object.AsteroidLarge),
		still(100, 700, object.AsteroidLarge),
		still(1100, 700, object.AsteroidLarge),
	}
}

func restingBullet(x, y float64) *object.Bullet {
	return &object.Bullet{X: x, Y: y, Life: config.BulletLife, Radius: config.BulletRadius}
}

func TestNewSessionIsIdle(t *testing.T) {
	s := New(Options{Store: &memStore{score: 1234}})
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
	st := s.Stats()
	if st.HighScore != 1234 {
		t.Errorf("high score = %d, want 1234", st.HighScore)
	}
	if st.Lives != 3 || st.Level != 1 || st.Score != 0 {
		t.Errorf("stats = %+v, want fresh scoreboard", st)
	}
	if s.World().Ship != nil {
		t.Error("idle session should have no ship")
	}
}

func TestStartSpawnsFirstLevel(t *testing.T) {
	s := New(Options{Field: fixedField, Seed: 1})
	s.Start()

	w := s.World()
	if w.Ship == nil || w.Ship.X != 640 || w.Ship.Y != 400 {
		t.Fatalf("ship should start at the field center, got %+v", w.Ship)
	}
	if len(w.Asteroids) != 4 {
		t.Fatalf("level 1 spawned %d asteroids, want 4", len(w.Asteroids))
	}
	for _, a := range w.Asteroids {
		if a.Size != object.AsteroidLarge {
			t.Errorf("asteroid size = %d, want large", a.Size)
		}
		if physics.Distance(a.X, a.Y, 640, 400) < config.SpawnSafeRadius {
			t.Errorf("asteroid at (%v, %v) spawned too close to the ship", a.X, a.Y)
		}
	}
}

func TestStepIdleIsNoop(t *testing.T) {
	s := New(Options{Field: fixedField})
	s.Step(tick, input.Controls{Fire: true})
	if s.State() != StateIdle || len(s.World().Bullets) != 0 {
		t.Error("idle session should not simulate")
	}
}

func TestBulletDestroysAsteroid(t *testing.T) {
	s := newPlaying(t, Options{Seed: 2})
	w := s.World()
	w.Asteroids = corners()
	w.Bullets = append(w.Bullets, restingBullet(110, 100))

	s.Step(tick, input.Controls{})

	if got := len(w.Asteroids); got != 5 {
		t.Errorf("asteroids after hit = %d, want 5", got)
	}
	if got := s.Stats().Score; got != 20 {
		t.Errorf("score = %d, want 20", got)
	}
	if len(w.Bullets) != 0 {
		t.Errorf("bullets = %d, want the bullet consumed", len(w.Bullets))
	}
	if got := len(w.Particles); got != config.BulletDebrisCount {
		t.Errorf("particles = %d, want %d debris", got, config.BulletDebrisCount)
	}
	medium := 0
	for _, a := range w.Asteroids {
		if a.Size == object.AsteroidMedium {
			medium++
			if a.X != 100 || a.Y != 100 {
				t.Errorf("fragment at (%v, %v), want the destroyed asteroid's position", a.X, a.Y)
			}
		}
	}
	if medium != 2 {
		t.Errorf("medium fragments = %d, want 2", medium)
	}
}

func TestOneBulletTakesOneAsteroid(t *testing.T) {
	s := newPlaying(t, Options{Seed: 2})
	w := s.World()
	// Two overlapping asteroids, one bullet touching both.
	w.Asteroids = []*object.Asteroid{
		still(300, 300, object.AsteroidSmall),
		still(310, 300, object.AsteroidSmall),
		still(1100, 700, object.AsteroidLarge),
	}
	w.Bullets = append(w.Bullets, restingBullet(305, 300))

	s.Step(tick, input.Controls{})

	if got := len(w.Asteroids); got != 2 {
		t.Errorf("asteroids = %d, want 2", got)
	}
	// The scan runs asteroids in reverse, so the later one goes first.
	if w.Asteroids[0].X != 300 {
		t.Errorf("remaining small asteroid at X=%v, want 300", w.Asteroids[0].X)
	}
	if got := s.Stats().Score; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestSplitChainScores170(t *testing.T) {
	s := newPlaying(t, Options{Seed: 3})
	w := s.World()
	anchor := still(1100, 700, object.AsteroidLarge)
	w.Asteroids = []*object.Asteroid{still(300, 300, object.AsteroidLarge), anchor}

	for _, size := range []object.AsteroidSize{object.AsteroidLarge, object.AsteroidMedium, object.AsteroidSmall} {
		var target *object.Asteroid
		for _, a := range w.Asteroids {
			a.VX, a.VY = 0, 0
			if target == nil && a.Size == size {
				target = a
			}
		}
		if target == nil {
			t.Fatalf("no asteroid of size %d left", size)
		}
		w.Bullets = append(w.Bullets, restingBullet(target.X, target.Y))
		s.Step(tick, input.Controls{})
	}

	if got := s.Stats().Score; got != 170 {
		t.Errorf("score = %d, want 170", got)
	}
	if s.Stats().Level != 1 {
		t.Errorf("level = %d, the anchor asteroid should keep level 1 running", s.Stats().Level)
	}
}

func TestShipHitTakesLife(t *testing.T) {
	s := newPlaying(t, Options{Seed: 4})
	w := s.World()
	w.Ship.Invincible = 0
	w.Asteroids = []*object.Asteroid{still(w.Ship.X+20, w.Ship.Y, object.AsteroidLarge)}

	s.Step(tick, input.Controls{})

	if got := s.Stats().Lives; got != 2 {
		t.Errorf("lives = %d, want 2", got)
	}
	if w.Ship.Invincible != 2 {
		t.Errorf("invulnerability = %v, want 2", w.Ship.Invincible)
	}
	if s.State() != StatePlaying {
		t.Errorf("state = %v, want playing", s.State())
	}
}

func TestShipHitIgnoredWhileInvulnerable(t *testing.T) {
	s := newPlaying(t, Options{Seed: 4})
	w := s.World()
	w.Asteroids = []*object.Asteroid{still(w.Ship.X, w.Ship.Y, object.AsteroidLarge)}

	s.Step(tick, input.Controls{})

	if got := s.Stats().Lives; got != 3 {
		t.Errorf("lives = %d, want 3 while invulnerable", got)
	}
}

func TestAtMostOneShipHitPerTick(t *testing.T) {
	s := newPlaying(t, Options{Seed: 4})
	w := s.World()
	w.Ship.Invincible = 0
	w.Asteroids = []*object.Asteroid{
		still(w.Ship.X, w.Ship.Y, object.AsteroidLarge),
		still(w.Ship.X+5, w.Ship.Y, object.AsteroidLarge),
	}

	s.Step(tick, input.Controls{})

	if got := s.Stats().Lives; got != 2 {
		t.Errorf("lives = %d, want exactly one life lost", got)
	}
}

func TestGameOverPersistsHighScore(t *testing.T) {
	store := &memStore{score: 50}
	s := newPlaying(t, Options{Seed: 5, Store: store})
	s.stats.Lives = 0
	s.stats.Score = 120
	s.world.Asteroids = corners()
	s.world.Ship.Invincible = 0

	s.HitShip()

	if s.State() != StateGameOver {
		t.Fatalf("state = %v, want game over", s.State())
	}
	if s.Stats().Lives != -1 {
		t.Errorf("lives = %d, want -1", s.Stats().Lives)
	}
	if s.Stats().HighScore != 120 || store.score != 120 {
		t.Errorf("high score = %d, stored %d, want 120", s.Stats().HighScore, store.score)
	}

	// Frozen once over.
	x := s.world.Ship.X
	s.Step(tick, input.Controls{Thrust: true})
	if s.world.Ship.X != x {
		t.Error("game over should freeze the simulation")
	}
}

func TestGameOverKeepsBetterHighScore(t *testing.T) {
	store := &memStore{score: 500}
	s := newPlaying(t, Options{Seed: 5, Store: store})
	s.stats.Lives = 0
	s.stats.Score = 120
	s.world.Ship.Invincible = 0

	s.HitShip()

	if store.saves != 0 {
		t.Errorf("store saved %d times, want no save for a lower score", store.saves)
	}
	if s.Stats().HighScore != 500 {
		t.Errorf("high score = %d, want 500", s.Stats().HighScore)
	}
}

func TestFailingStoreDoesNotStopGame(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk gone"), saveErr: errors.New("disk gone")}
	s := newPlaying(t, Options{Seed: 6, Store: store})
	if s.Stats().HighScore != 0 {
		t.Errorf("high score = %d, want 0 after a failed load", s.Stats().HighScore)
	}
	s.stats.Lives = 0
	s.stats.Score = 40
	s.world.Ship.Invincible = 0

	s.HitShip()

	if s.State() != StateGameOver {
		t.Fatalf("state = %v, want game over", s.State())
	}
	if store.lastSaved != 40 {
		t.Errorf("attempted save = %d, want 40", store.lastSaved)
	}
	if s.Stats().HighScore != 40 {
		t.Errorf("in-memory high score = %d, want 40", s.Stats().HighScore)
	}

	s.Start()
	if s.State() != StatePlaying {
		t.Error("a new game should start after a failed save")
	}
}

func TestLevelCompletion(t *testing.T) {
	s := newPlaying(t, Options{Seed: 7})

	s.Step(tick, input.Controls{})

	if got := s.Stats().Level; got != 2 {
		t.Fatalf("level = %d, want 2", got)
	}
	if got := len(s.World().Asteroids); got != 5 {
		t.Errorf("level 2 spawned %d asteroids, want 5", got)
	}
	if got := s.Stats().Lives; got != 3 {
		t.Errorf("lives = %d, no bonus expected before level 5", got)
	}
}

func TestBonusLifeEveryFifthLevel(t *testing.T) {
	tests := []struct {
		name  string
		lives int
		want  int
	}{
		{"grants a life", 3, 4},
		{"capped", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPlaying(t, Options{Seed: 8})
			s.stats.Level = 4
			s.stats.Lives = tt.lives

			s.Step(tick, input.Controls{})

			if s.Stats().Level != 5 {
				t.Fatalf("level = %d, want 5", s.Stats().Level)
			}
			if s.Stats().Lives != tt.want {
				t.Errorf("lives = %d, want %d", s.Stats().Lives, tt.want)
			}
			if got := len(s.World().Asteroids); got != 8 {
				t.Errorf("level 5 spawned %d asteroids, want 8", got)
			}
		})
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	s := New(Options{Field: fixedField, Seed: 9})
	s.Start()
	s.TogglePause()
	if s.State() != StatePaused {
		t.Fatalf("state = %v, want paused", s.State())
	}

	w := s.World()
	ship := *w.Ship
	rock := *w.Asteroids[0]
	for i := 0; i < 60; i++ {
		s.Step(tick, input.Controls{Thrust: true, Fire: true})
	}
	if *w.Ship != ship || !reflect.DeepEqual(*w.Asteroids[0], rock) {
		t.Error("paused session should not move")
	}
	if len(w.Bullets) != 0 {
		t.Error("paused session should not fire")
	}

	s.TogglePause()
	if s.State() != StatePlaying {
		t.Errorf("state = %v, want playing", s.State())
	}
}

func TestPauseIgnoredOutsideGame(t *testing.T) {
	s := New(Options{})
	s.TogglePause()
	if s.State() != StateIdle {
		t.Errorf("state = %v, pause should be ignored while idle", s.State())
	}
}

func TestHandle(t *testing.T) {
	s := New(Options{Field: fixedField, Seed: 10})

	if !s.Handle(input.Input{Start: true}) {
		t.Fatal("start should begin a game from idle")
	}
	s.stats.Score = 300
	if s.Handle(input.Input{Start: true}) {
		t.Error("start should be ignored while playing")
	}
	if s.Stats().Score != 300 {
		t.Error("ignored start must not reset the score")
	}

	s.Handle(input.Input{Pause: true})
	if s.State() != StatePaused {
		t.Errorf("state = %v, want paused", s.State())
	}

	if !s.Handle(input.Input{Restart: true}) {
		t.Fatal("restart should begin a new game from any state")
	}
	if s.State() != StatePlaying || s.Stats().Score != 0 {
		t.Errorf("restart left state %v score %d", s.State(), s.Stats().Score)
	}

	s.Handle(input.Input{Mute: true})
	if !s.Stats().Muted {
		t.Error("mute should toggle the muted flag")
	}
}

func TestMuteSuppressesCues(t *testing.T) {
	cues := &cueLog{}
	s := newPlaying(t, Options{Seed: 11, Audio: cues})
	s.world.Asteroids = corners()

	s.Step(tick, input.Controls{Fire: true})
	if len(cues.cues) != 1 || cues.cues[0] != object.CueFire {
		t.Fatalf("cues = %v, want one fire cue", cues.cues)
	}

	s.ToggleMute()
	for i := 0; i < 60; i++ {
		s.Step(tick, input.Controls{Fire: true})
	}
	if len(cues.cues) != 1 {
		t.Errorf("cues while muted = %d, want none", len(cues.cues)-1)
	}
}

func TestNilCollaborators(t *testing.T) {
	s := New(Options{Seed: 12})
	s.Start()
	s.world.Ship.Invincible = 0
	for i := 0; i < 240; i++ {
		s.Step(tick, input.Controls{Fire: true, Thrust: true, Left: true, Hyper: i%60 == 0})
	}
	s.stats.Lives = 0
	s.world.Ship.Invincible = 0
	s.HitShip()
	if s.State() != StateGameOver {
		t.Errorf("state = %v, want game over", s.State())
	}
}

func TestFieldReadEveryTick(t *testing.T) {
	width := 1280.0
	s := New(Options{Seed: 13, Field: func() (float64, float64) { return width, 800 }})
	s.Start()

	width = 640
	s.Step(tick, input.Controls{})
	if s.World().Field.Width != 640 {
		t.Errorf("field width = %v, want 640", s.World().Field.Width)
	}
	for _, a := range s.World().Asteroids {
		if a.X >= 640 {
			t.Errorf("asteroid X = %v outside the shrunken field", a.X)
		}
	}
}

func TestStepIsDeterministic(t *testing.T) {
	script := func(i int) input.Controls {
		return input.Controls{
			Left:   i%90 < 30,
			Right:  i%90 > 60,
			Thrust: i%50 < 20,
			Fire:   true,
			Hyper:  i == 300,
		}
	}

	run := func() *Session {
		s := New(Options{Field: fixedField, Seed: 2024})
		s.Start()
		for i := 0; i < 1200; i++ {
			s.Step(tick, script(i))
		}
		return s
	}

	a, b := run(), run()
	if a.Stats() != b.Stats() {
		t.Fatalf("stats diverged: %+v vs %+v", a.Stats(), b.Stats())
	}
	if a.State() != b.State() {
		t.Fatalf("state diverged: %v vs %v", a.State(), b.State())
	}
	wa, wb := a.World(), b.World()
	if !reflect.DeepEqual(wa.Ship, wb.Ship) {
		t.Error("ship diverged")
	}
	if !reflect.DeepEqual(wa.Asteroids, wb.Asteroids) {
		t.Error("asteroids diverged")
	}
	if !reflect.DeepEqual(wa.Bullets, wb.Bullets) {
		t.Error("bullets diverged")
	}
	if len(wa.Particles) != len(wb.Particles) {
		t.Errorf("particle counts diverged: %d vs %d", len(wa.Particles), len(wb.Particles))
	}
}

func TestWorldSpawnRoutesByKind(t *testing.T) {
	var w World
	w.Spawn(&object.Bullet{})
	w.Spawn(&object.Asteroid{})
	w.Spawn(object.NewParticle(0, 0, 0, 0, 1, object.ParticleThrust))
	w.Spawn(&object.Ship{})

	if len(w.Bullets) != 1 || len(w.Asteroids) != 1 || len(w.Particles) != 1 || w.Ship == nil {
		t.Errorf("spawn routing wrong: %d bullets %d asteroids %d particles ship %v",
			len(w.Bullets), len(w.Asteroids), len(w.Particles), w.Ship != nil)
	}

	count := 0
	w.Objects(func(object.Object) { count++ })
	if count != 4 {
		t.Errorf("Objects visited %d entities, want 4", count)
	}

	w.reset()
	if len(w.Particles) != 0 || w.Ship != nil {
		t.Error("reset should empty the world")
	}
}
