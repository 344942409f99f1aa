package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/astroops/internal/audio"
	"github.com/tomz197/astroops/internal/config"
	"github.com/tomz197/astroops/internal/loop"
	"github.com/tomz197/astroops/internal/loop/session"
	"github.com/tomz197/astroops/internal/object"
	"github.com/tomz197/astroops/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "astroops: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetEnv("ASTROOPS_CONFIG", "astroops.toml"))
	if err != nil {
		return err
	}

	// The terminal is the game screen, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, cfg.LogLevel, "game")

	var scores session.HighScoreStore = &store.Memory{}
	if cfg.HighScore != "" {
		scores = store.NewFile(cfg.HighScore)
	}

	sink := newAudio(cfg, logger)
	if closer, ok := sink.(*audio.Sink); ok {
		defer closer.Close()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Info("starting game", "highscore", cfg.HighScore, "audio", cfg.Audio)
	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Store:    scores,
		Audio:    sink,
		Renderer: lipgloss.NewRenderer(os.Stdout),
		Logger:   logger,
		Seed:     time.Now().UnixNano(),
	})
	if err != nil {
		logger.Error("game stopped", "err", err)
		return err
	}
	return nil
}

// newAudio opens the speaker, falling back to silence when there is no
// usable audio device.
func newAudio(cfg config.Config, logger *log.Logger) object.CueSink {
	if !cfg.Audio {
		return audio.Nop{}
	}
	sink := audio.New(cfg.Volume, logger)
	if err := sink.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}
	}
	return sink
}
