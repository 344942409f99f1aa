package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/astroops/internal/draw"
	"github.com/tomz197/astroops/internal/loop/session"
	"github.com/tomz197/astroops/internal/object"
)

var controlsHelp = []string{
	"A/D or ←/→ rotate    W or ↑ thrust    SPACE fire    S or ↓ hyperspace",
	"P pause    M mute    R restart    Q quit",
}

// screens renders the HUD and the per-state overlays as text on top of the
// canvas.
type screens struct {
	title  lipgloss.Style
	accent lipgloss.Style
	hud    lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
}

func newScreens(r *lipgloss.Renderer) *screens {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &screens{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5C542")),
		accent: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4FD1C5")),
		hud:    r.NewStyle().Foreground(lipgloss.Color("#E2E8F0")),
		dim:    r.NewStyle().Faint(true),
		warn:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F56565")),
	}
}

// frameInfo is what the overlays need from one frame.
type frameInfo struct {
	state    session.GameState
	stats    session.Stats
	fps      float64
	idleLeft time.Duration
	idleWarn bool
}

// render writes the overlay for the current state.
func (s *screens) render(w *draw.ChunkWriter, c *draw.Canvas, info frameInfo) {
	cols := c.TerminalWidth()
	rows := c.TerminalHeight()
	centerX := cols / 2
	centerY := rows / 2

	switch info.state {
	case session.StateIdle:
		s.drawIdle(w, c, info, centerX, centerY)
	case session.StatePlaying:
		s.drawHUD(w, c, info, cols, rows)
	case session.StatePaused:
		s.drawHUD(w, c, info, cols, rows)
		s.centered(w, c, s.title, "P A U S E D", centerX, centerY-1)
		s.centered(w, c, s.dim, "Press P to resume", centerX, centerY+1)
	case session.StateGameOver:
		s.drawHUD(w, c, info, cols, rows)
		s.drawGameOver(w, c, info, centerX, centerY)
	}

	if info.idleWarn {
		msg := fmt.Sprintf("Disconnecting in %d s due to inactivity", int(info.idleLeft.Seconds()+0.999))
		s.centered(w, c, s.warn, msg, centerX, rows-1)
	}
}

func (s *screens) drawIdle(w *draw.ChunkWriter, c *draw.Canvas, info frameInfo, centerX, centerY int) {
	s.centered(w, c, s.title, "A S T R O   O P S", centerX, centerY-4)
	s.centered(w, c, s.accent, "Press SPACE to start", centerX, centerY-1)
	if info.stats.HighScore > 0 {
		s.centered(w, c, s.hud, fmt.Sprintf("High score %d", info.stats.HighScore), centerX, centerY+1)
	}
	for i, line := range controlsHelp {
		s.centered(w, c, s.dim, line, centerX, centerY+4+i)
	}
}

func (s *screens) drawHUD(w *draw.ChunkWriter, c *draw.Canvas, info frameInfo, cols, rows int) {
	st := info.stats
	left := fmt.Sprintf("SCORE %d   HI %d   LEVEL %d", st.Score, st.HighScore, st.Level)
	s.text(w, c, s.hud, left, 2, 1)

	right := "LIVES " + strings.Repeat("▲ ", max(st.Lives, 0))
	if st.Muted {
		right = "MUTED   " + right
	}
	right = strings.TrimRight(right, " ")
	s.text(w, c, s.hud, right, cols-lipgloss.Width(right), 1)

	if info.fps > 0 {
		s.text(w, c, s.dim, fmt.Sprintf("%.0f fps", info.fps), 2, rows)
	}
}

func (s *screens) drawGameOver(w *draw.ChunkWriter, c *draw.Canvas, info frameInfo, centerX, centerY int) {
	st := info.stats
	s.centered(w, c, s.title, "G A M E   O V E R", centerX, centerY-3)
	s.centered(w, c, s.hud, fmt.Sprintf("Score %d   Level %d", st.Score, st.Level), centerX, centerY-1)
	if st.Score > 0 && st.Score == st.HighScore {
		s.centered(w, c, s.accent, "New high score!", centerX, centerY+1)
	}
	s.centered(w, c, s.dim, "Press SPACE to play again or Q to quit", centerX, centerY+3)
}

// centered writes text centred on column centerX.
func (s *screens) centered(w *draw.ChunkWriter, c *draw.Canvas, style lipgloss.Style, text string, centerX, row int) {
	s.text(w, c, style, text, centerX-lipgloss.Width(text)/2, row)
}

func (s *screens) text(w *draw.ChunkWriter, c *draw.Canvas, style lipgloss.Style, text string, col, row int) {
	object.Text{
		X:     col,
		Y:     row,
		Value: style.Render(text),
		Width: lipgloss.Width(text),
	}.Draw(w, c)
}
