package session

// GameState is the phase of a session.
type GameState int

const (
	StateIdle     GameState = iota // Title screen, nothing simulated
	StatePlaying                   // Active gameplay
	StatePaused                    // Frozen, input still observed
	StateGameOver                  // Final stats shown
)

// String returns the state name for logging.
func (s GameState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Stats is the scoreboard of a session.
type Stats struct {
	Score     int
	Level     int
	Lives     int
	HighScore int
	Muted     bool
}
