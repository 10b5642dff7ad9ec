// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadDotEnv(".env"); err != nil { ... }
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - Mode: serve (HTTP API) or tui (terminal front end); default serve
  - SeedFile: YAML dataset replacing the embedded demo data
  - SessionTTL: idle lifetime of a demo session (default: 30m)
  - LogLevel, LogFile: slog level and optional rotated log file
  - CurrentUserID: the partner the demo acts as (default: partner-1)
  - RequireQuorum: refuse to advance before all partners voted
  - TokenSalt: Secret for session key HMAC and IP hashing (required to serve)

# CLI Flags

	-p                Server port
	-mode             serve | tui
	-seed             Seed dataset file
	-session-ttl      Idle session lifetime
	-user             Current partner id
	-require-quorum   Gate advancing on quorum
	-log-level        debug | info | warn | error
	-log-file         Rotated log file
	-token-salt       Session token salt

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	MODE            → -mode
	SEED_FILE       → -seed
	SESSION_TTL     → -session-ttl
	CURRENT_USER_ID → -user
	REQUIRE_QUORUM  → -require-quorum
	LOG_LEVEL       → -log-level
	LOG_FILE        → -log-file
	TOKEN_SALT      → -token-salt

CLI flags take precedence over environment variables, and the environment
takes precedence over a .env file loaded with LoadDotEnv.

# Validation

ParseFlags returns an error for malformed values (port, duration, level,
mode) and when TOKEN_SALT is missing in serve mode.
*/
package cliparse
