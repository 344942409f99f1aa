package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/astroops/internal/draw"
	"github.com/tomz197/astroops/internal/input"
	"github.com/tomz197/astroops/internal/loop/config"
	"github.com/tomz197/astroops/internal/loop/session"
	"github.com/tomz197/astroops/internal/object"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	session      *session.Session
	canvas       *draw.Canvas
	writer       io.Writer
	out          *draw.ChunkWriter
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	screens      *screens
	logger       *log.Logger

	clock Clock
	fps   fpsCounter
	idle  inactivity
	cols  int
	rows  int
	last  time.Time

	// hyper holds a hyperspace press until a tick consumes it.
	hyper bool
}

// NewClient creates a client with its own session.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Client{
		writer:       w,
		out:          draw.NewChunkWriter(w),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		screens:      newScreens(opts.Renderer),
		logger:       logger,
		idle: inactivity{
			warn:       opts.InactivityWarn,
			disconnect: opts.InactivityDisconnect,
		},
	}

	c.cols, c.rows = 80, 24
	if cols, rows, err := termSizeFunc(); err == nil {
		c.cols, c.rows = cols, rows
	}
	fieldW, fieldH := c.fieldSize()
	c.canvas = draw.NewScaledCanvas(c.cols, c.rows, fieldW, fieldH)

	c.session = session.New(session.Options{
		Field:  c.fieldSize,
		Audio:  opts.Audio,
		Store:  opts.Store,
		Logger: logger,
		Seed:   opts.Seed,
	})
	return c
}

// fieldSize maps the terminal to field units.
func (c *Client) fieldSize() (float64, float64) {
	return float64(c.cols * config.CellWidth), float64(c.rows * config.CellHeight)
}

// Session returns the client's game session.
func (c *Client) Session() *session.Session {
	return c.session
}

// Run starts the frame loop. Blocks until the player quits, the input ends,
// the player idles out (ErrInactive) or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer draw.ClearScreen(c.writer)

	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	c.last = time.Now()
	c.idle.touch(c.last)

	for {
		done, err := c.frame(time.Now())
		if err != nil || done {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// frame runs one Input → Update → Draw cycle. Returns done when the client
// should stop.
func (c *Client) frame(now time.Time) (bool, error) {
	elapsed := now.Sub(c.last).Seconds()
	c.last = now

	// ===== INPUT PHASE =====
	in := input.ReadInput(c.inputStream)
	if in.Quit {
		return true, nil
	}
	if len(in.Pressed) > 0 {
		c.idle.touch(now)
	}
	if c.idle.expired(now) {
		c.logger.Info("client idle, disconnecting", "idle", now.Sub(c.idle.last).Round(time.Second))
		return true, ErrInactive
	}

	// ===== UPDATE PHASE =====
	c.updateScreen()
	controls := in.Controls
	c.hyper = c.hyper || controls.Hyper
	if c.session.Handle(in) {
		// The key that started the game must not also fire.
		input.ResetKeyInput(c.inputStream)
		controls = input.Controls{}
		c.hyper = false
	}

	for n := c.clock.Advance(elapsed); n > 0; n-- {
		controls.Hyper = c.hyper
		c.session.Step(config.TickSeconds, controls)
		c.hyper = false
	}
	if c.session.State() != session.StatePlaying {
		c.hyper = false
	}
	c.fps.add(elapsed)

	// ===== DRAW PHASE =====
	if err := c.drawFrame(now); err != nil {
		return true, err
	}
	return false, nil
}

// updateScreen picks up terminal resizes. The new size reaches the session on
// its next tick through fieldSize.
func (c *Client) updateScreen() {
	cols, rows, err := c.termSizeFunc()
	if err != nil || cols < 1 || rows < 1 {
		return
	}
	if cols == c.cols && rows == c.rows {
		return
	}
	c.logger.Debug("terminal resized", "cols", cols, "rows", rows)
	c.cols, c.rows = cols, rows
	w, h := c.fieldSize()
	c.canvas.Resize(cols, rows, w, h)
	c.out.WriteString("\033[H\033[2J")
}

// drawFrame renders changed canvas cells, then the overlays on top.
func (c *Client) drawFrame(now time.Time) error {
	c.canvas.Clear()

	world := c.session.World()
	ctx := object.DrawContext{
		Canvas: c.canvas,
		Field:  world.Field,
	}
	world.Objects(func(obj object.Object) {
		obj.Draw(ctx)
	})

	if err := c.canvas.Render(c.out); err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}

	left, warn := c.idle.remaining(now)
	c.screens.render(c.out, c.canvas, frameInfo{
		state:    c.session.State(),
		stats:    c.session.Stats(),
		fps:      c.fps.fps,
		idleLeft: left,
		idleWarn: warn,
	})

	if err := c.out.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}
