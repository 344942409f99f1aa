// Package loop drives a game session in a terminal: it reads input, runs the
// fixed-timestep simulation and renders the world plus HUD once per frame.
package loop

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/astroops/internal/draw"
	"github.com/tomz197/astroops/internal/loop/session"
	"github.com/tomz197/astroops/internal/object"
)

// ErrInactive is returned by Run when the player stopped pressing keys for
// longer than Options.InactivityDisconnect.
var ErrInactive = errors.New("disconnected for inactivity")

// Options configures a client. Zero values select defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc     // Defaults to the size of os.Stdout
	Store        session.HighScoreStore // High score persistence
	Audio        object.CueSink         // Sound output
	Renderer     *lipgloss.Renderer     // Styles the overlays for this output
	Logger       *log.Logger
	Seed         int64

	InactivityWarn       time.Duration // Show a countdown after this much idle time
	InactivityDisconnect time.Duration // End the game after this much idle time; 0 disables
}

// Run plays a game reading keys from r and drawing to w until the player
// quits, the input ends or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewClient(r, w, opts).Run(ctx)
}
