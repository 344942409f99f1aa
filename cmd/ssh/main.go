package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/astroops/internal/audio"
	"github.com/tomz197/astroops/internal/config"
	"github.com/tomz197/astroops/internal/draw"
	"github.com/tomz197/astroops/internal/loop"
	"github.com/tomz197/astroops/internal/loop/session"
	"github.com/tomz197/astroops/internal/store"
)

func main() {
	logger := config.NewLogger(os.Stderr, "info", "ssh")

	cfg, err := config.Load(config.GetEnv("ASTROOPS_CONFIG", "astroops.toml"))
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	logger = config.NewLogger(os.Stderr, cfg.LogLevel, "ssh")

	var scores session.HighScoreStore = &store.Memory{}
	if cfg.HighScore != "" {
		scores = store.NewFile(cfg.HighScore)
	}

	g := &games{cfg: cfg, store: scores, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "host", cfg.SSH.Host, "port", cfg.SSH.Port, "highscore", cfg.HighScore)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "players", g.active())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// games runs one independent game per SSH session. The high score store is
// the only state the sessions share.
type games struct {
	cfg    config.Config
	store  session.HighScoreStore
	logger *log.Logger

	mu      sync.Mutex
	players int
}

func (g *games) active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players
}

func (g *games) join(delta int) {
	g.mu.Lock()
	g.players += delta
	g.mu.Unlock()
}

// middleware handles SSH sessions and runs the game.
func (g *games) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("game session started", "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)
		g.join(1)
		defer g.join(-1)

		// Track terminal size from window change events
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc:         sizeTracker.getSize,
			Store:                g.store,
			Audio:                audio.Nop{},
			Renderer:             newRenderer(sess, pty.Term),
			Logger:               logger,
			Seed:                 time.Now().UnixNano(),
			InactivityWarn:       g.cfg.SSH.IdleWarn,
			InactivityDisconnect: g.cfg.SSH.IdleTimeout,
		})
		switch {
		case errors.Is(err, loop.ErrInactive):
			fmt.Fprintln(sess, "Disconnected after being idle. Come back any time!")
			logger.Info("game session idled out")
		case err != nil:
			logger.Error("game error", "err", err)
		}

		logger.Info("game session ended")
		next(sess)
	}
}

// newRenderer builds a lipgloss renderer that detects colors from the
// remote terminal rather than from the server process.
func newRenderer(sess ssh.Session, term string) *lipgloss.Renderer {
	environ := append(slices.Clone(sess.Environ()), "TERM="+term)
	env := sessionEnv{environ: environ}
	return lipgloss.NewRenderer(sess,
		termenv.WithEnvironment(env),
		termenv.WithUnsafe(),
		termenv.WithColorCache(true),
	)
}

// sessionEnv exposes the client's environment to termenv.
type sessionEnv struct {
	environ []string
}

func (e sessionEnv) Environ() []string {
	return e.environ
}

// Getenv returns the last value set for key.
func (e sessionEnv) Getenv(key string) string {
	for _, kv := range slices.Backward(e.environ) {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
