package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the commands.
type Config struct {
	SSH       SSHConfig `toml:"ssh"`
	Web       WebConfig `toml:"web"`
	HighScore string    `toml:"highscore_path"` // Empty keeps scores in memory
	LogLevel  string    `toml:"log_level"`
	LogFile   string    `toml:"log_file"` // Local game only; empty discards logs
	Audio     bool      `toml:"audio"`
	Volume    float64   `toml:"volume"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Host        string        `toml:"host"`
	Port        string        `toml:"port"`
	HostKey     string        `toml:"host_key"`
	DisplayHost string        `toml:"display_host"` // Host shown on the landing page
	IdleWarn    time.Duration `toml:"idle_warn"`
	IdleTimeout time.Duration `toml:"idle_timeout"`
}

// WebConfig configures the landing page server.
type WebConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKey:     ".ssh/id_ed25519",
			DisplayHost: "localhost",
			IdleWarn:    90 * time.Second,
			IdleTimeout: 120 * time.Second,
		},
		Web: WebConfig{
			Host: "::",
			Port: "8080",
		},
		HighScore: "highscore.toml",
		LogLevel:  "info",
		Audio:     true,
		Volume:    1,
	}
}

// Load builds the configuration in increasing priority: defaults, a .env
// file in the working directory, the TOML file at path, then environment
// variables. Missing files are skipped; an empty path skips the TOML file.
// The .env file is read, not exported into the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	dotenv, err := godotenv.Read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg, mapLookup(dotenv)); err != nil {
		return cfg, fmt.Errorf(".env: %w", err)
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func mapLookup(m map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// applyEnv overrides cfg with every variable lookup finds.
func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	str("SSH_HOST", &cfg.SSH.Host)
	str("SSH_PORT", &cfg.SSH.Port)
	str("SSH_HOST_KEY", &cfg.SSH.HostKey)
	str("SSH_DISPLAY_HOST", &cfg.SSH.DisplayHost)
	str("WEB_HOST", &cfg.Web.Host)
	str("WEB_PORT", &cfg.Web.Port)
	str("HIGHSCORE_PATH", &cfg.HighScore)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FILE", &cfg.LogFile)

	if v, ok := lookup("AUDIO"); ok {
		on, err := parseSwitch(v)
		if err != nil {
			return fmt.Errorf("AUDIO: %w", err)
		}
		cfg.Audio = on
	}
	if v, ok := lookup("IDLE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("IDLE_TIMEOUT: %w", err)
		}
		cfg.SSH.IdleTimeout = d
	}
	return nil
}

// parseSwitch accepts the usual boolean spellings plus on/off.
func parseSwitch(v string) (bool, error) {
	switch v {
	case "on", "ON", "yes":
		return true, nil
	case "off", "OFF", "no":
		return false, nil
	}
	return strconv.ParseBool(v)
}
