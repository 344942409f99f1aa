// Package session implements a single game of asteroids: the simulation step,
// collision and scoring rules, level flow and the Idle/Playing/Paused/GameOver
// state machine.
//
// A Session is not safe for concurrent use. One goroutine drives it.
package session

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/astroops/internal/input"
	"github.com/tomz197/astroops/internal/loop/config"
	"github.com/tomz197/astroops/internal/object"
)

// FieldFunc reports the current play-field size in field units.
type FieldFunc func() (width, height float64)

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// Options configures a session. Every collaborator may be nil.
type Options struct {
	Field  FieldFunc      // Defaults to the config default field
	Audio  object.CueSink // Receives cues unless muted
	Store  HighScoreStore // High score persistence
	Logger *log.Logger
	Seed   int64 // Seed for every random draw of the session
}

// Session owns one game: its entities, scoreboard and state.
type Session struct {
	world   World
	stats   Stats
	state   GameState
	field   FieldFunc
	audio   object.CueSink
	store   HighScoreStore
	logger  *log.Logger
	rng     *rand.Rand
	spawner *object.AsteroidSpawner
}

// New creates an idle session and loads the stored high score.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	field := opts.Field
	if field == nil {
		field = func() (float64, float64) {
			return config.DefaultFieldWidth, config.DefaultFieldHeight
		}
	}

	s := &Session{
		state:   StateIdle,
		field:   field,
		audio:   opts.Audio,
		store:   opts.Store,
		logger:  logger,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		spawner: object.NewAsteroidSpawner(config.SpawnSafeRadius),
	}
	s.stats.Level = config.FirstLevel
	s.stats.Lives = config.InitialLives
	s.readField()

	if s.store != nil {
		best, err := s.store.Load()
		if err != nil {
			s.logger.Warn("failed to load high score", "err", err)
		} else {
			s.stats.HighScore = best
		}
	}
	return s
}

// World returns the session's entities. The caller must not keep references
// across steps.
func (s *Session) World() *World {
	return &s.world
}

// Stats returns a copy of the scoreboard.
func (s *Session) Stats() Stats {
	return s.stats
}

// State returns the current game state.
func (s *Session) State() GameState {
	return s.state
}

// Handle applies the pressed events of one frame. Returns true if a new game
// was started.
func (s *Session) Handle(in input.Input) bool {
	started := false
	switch {
	case in.Restart:
		s.Restart()
		started = true
	case in.Start && (s.state == StateIdle || s.state == StateGameOver):
		s.Start()
		started = true
	}
	if in.Pause {
		s.TogglePause()
	}
	if in.Mute {
		s.ToggleMute()
	}
	return started
}

// Start begins a new game from Idle or GameOver. Ignored in other states.
func (s *Session) Start() {
	if s.state != StateIdle && s.state != StateGameOver {
		return
	}
	s.newGame()
}

// Restart begins a new game from any state.
func (s *Session) Restart() {
	s.newGame()
}

func (s *Session) newGame() {
	s.world.reset()
	s.stats.Score = 0
	s.stats.Level = config.FirstLevel
	s.stats.Lives = config.InitialLives
	s.readField()

	s.world.Ship = object.NewShip(s.world.Field)
	s.spawnLevel()
	s.setState(StatePlaying)
}

// TogglePause switches between Playing and Paused. Ignored in other states.
func (s *Session) TogglePause() {
	switch s.state {
	case StatePlaying:
		s.setState(StatePaused)
	case StatePaused:
		s.setState(StatePlaying)
	}
}

// ToggleMute flips the muted flag. Cues are dropped while muted.
func (s *Session) ToggleMute() {
	s.stats.Muted = !s.stats.Muted
}

// Play forwards a cue to the audio collaborator unless muted.
func (s *Session) Play(cue object.Cue) {
	if s.stats.Muted || s.audio == nil {
		return
	}
	s.audio.Play(cue)
}

func (s *Session) setState(state GameState) {
	if s.state == state {
		return
	}
	s.logger.Debug("state change", "from", s.state, "to", state)
	s.state = state
}

func (s *Session) readField() {
	w, h := s.field()
	s.world.Field = object.Field{Width: w, Height: h}
}

// updateContext builds the context handed to entities for one tick.
func (s *Session) updateContext(dt float64, controls input.Controls) object.UpdateContext {
	return object.UpdateContext{
		DT:        dt,
		Input:     controls,
		Field:     s.world.Field,
		Rand:      s.rng,
		Spawner:   &s.world,
		Cues:      s,
		Asteroids: s.world.Asteroids,
	}
}

// gameOver ends the game and persists a beaten high score.
func (s *Session) gameOver() {
	s.setState(StateGameOver)
	s.logger.Info("game over", "score", s.stats.Score, "level", s.stats.Level)

	if s.stats.Score <= s.stats.HighScore {
		return
	}
	s.stats.HighScore = s.stats.Score
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.stats.HighScore); err != nil {
		s.logger.Warn("failed to save high score", "score", s.stats.HighScore, "err", err)
	}
}
