package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Run modes
const (
	ModeServe = "serve"
	ModeTUI   = "tui"
)

type Config struct {
	Port          int
	SeedFile      string
	SessionTTL    time.Duration
	LogLevel      slog.Level
	LogFile       string
	CurrentUserID string
	RequireQuorum bool
	TokenSalt     string
	Mode          string
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttl, level string

	fs := flag.NewFlagSet("dealdesk", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Mode, "mode", "", "Run mode (serve or tui)")
	fs.StringVar(&cfg.SeedFile, "seed", "", "Seed dataset YAML file (default: embedded)")
	fs.StringVar(&ttl, "session-ttl", "", "Idle session lifetime, e.g. 30m")
	fs.StringVar(&cfg.CurrentUserID, "user", "", "Partner id the demo acts as")
	fs.BoolVar(&cfg.RequireQuorum, "require-quorum", false, "Refuse to advance before every partner has voted")

	fs.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Also write logs to this file, rotated")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSalt, "token-salt", "", "Session token salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.Mode == "" {
		cfg.Mode = envOr("MODE", ModeServe)
	}
	if cfg.Mode != ModeServe && cfg.Mode != ModeTUI {
		return Config{}, fmt.Errorf("invalid mode %q (want serve or tui)", cfg.Mode)
	}

	if cfg.SeedFile == "" {
		cfg.SeedFile = os.Getenv("SEED_FILE")
	}

	if ttl == "" {
		ttl = envOr("SESSION_TTL", "30m")
	}
	d, err := time.ParseDuration(ttl)
	if err != nil || d <= 0 {
		return Config{}, fmt.Errorf("invalid session TTL %q", ttl)
	}
	cfg.SessionTTL = d

	if level == "" {
		level = envOr("LOG_LEVEL", "info")
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", level)
	}

	if cfg.LogFile == "" {
		cfg.LogFile = os.Getenv("LOG_FILE")
	}

	if cfg.CurrentUserID == "" {
		cfg.CurrentUserID = envOr("CURRENT_USER_ID", "partner-1")
	}

	if !cfg.RequireQuorum {
		if v := os.Getenv("REQUIRE_QUORUM"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid REQUIRE_QUORUM env variable")
			}
			cfg.RequireQuorum = b
		}
	}

	// Secrets - MUST be provided when serving
	if cfg.TokenSalt == "" {
		cfg.TokenSalt = os.Getenv("TOKEN_SALT")
	}
	if cfg.TokenSalt == "" && cfg.Mode == ModeServe {
		return Config{}, errors.New("TOKEN_SALT required")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
