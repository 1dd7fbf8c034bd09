package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are the process-level knobs read from the environment.
type Settings struct {
	SocketPath    string        `env:"STARFALL_SOCKET"          envDefault:"/tmp/starfall.sock"`
	HTTPAddr      string        `env:"STARFALL_HTTP_ADDR"       envDefault:":8080"`
	BalanceFile   string        `env:"STARFALL_BALANCE_FILE"`
	Mode          string        `env:"STARFALL_MODE"            envDefault:"conquest"`
	Personality   string        `env:"STARFALL_PERSONALITY"     envDefault:"balanced"`
	Seed          int64         `env:"STARFALL_SEED"`
	FrameInterval time.Duration `env:"STARFALL_FRAME_INTERVAL"  envDefault:"16ms"`
	CommandRate   float64       `env:"STARFALL_COMMAND_RATE"    envDefault:"10"`
	CommandBurst  int           `env:"STARFALL_COMMAND_BURST"   envDefault:"20"`
	LogLevel      string        `env:"STARFALL_LOG_LEVEL"       envDefault:"info"`
	Debug         bool          `env:"STARFALL_DEBUG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings reads Settings from the environment and validates them.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	if s.FrameInterval <= 0 {
		return Settings{}, fmt.Errorf("frame interval must be positive, got %s", s.FrameInterval)
	}
	if s.CommandRate <= 0 || s.CommandBurst <= 0 {
		return Settings{}, fmt.Errorf("command rate %.1f/burst %d must be positive", s.CommandRate, s.CommandBurst)
	}
	return s, nil
}

// Level maps LogLevel onto slog. Unknown names fall back to info.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
