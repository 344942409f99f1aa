package main

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/astroops/internal/config"
	"github.com/tomz197/astroops/internal/loop/session"
	"github.com/tomz197/astroops/internal/store"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

// pageData fills the landing page template.
type pageData struct {
	SSHHost   string
	SSHPort   string
	HighScore int
}

func main() {
	logger := config.NewLogger(os.Stderr, "info", "web")

	cfg, err := config.Load(config.GetEnv("ASTROOPS_CONFIG", "astroops.toml"))
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	logger = config.NewLogger(os.Stderr, cfg.LogLevel, "web")

	var scores session.HighScoreStore = &store.Memory{}
	if cfg.HighScore != "" {
		scores = store.NewFile(cfg.HighScore)
	}

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(cfg, scores, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting web server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// newHandler serves the landing page at / and nothing else.
func newHandler(cfg config.Config, scores session.HighScoreStore, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		best, err := scores.Load()
		if err != nil {
			logger.Warn("failed to load high score", "err", err)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{
			SSHHost:   cfg.SSH.DisplayHost,
			SSHPort:   cfg.SSH.Port,
			HighScore: best,
		}
		if err := page.Execute(w, data); err != nil {
			logger.Error("failed to render page", "err", err)
		}
	})
	return mux
}
