// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for DealDesk.

DealDesk is a demo deal-flow CRM for a small venture fund: partners vote on
incoming applications, promising ones move to an interview stage, and each
interview ends in an investment or a rejection. All data is in memory and
comes from a seed dataset; nothing is persisted.

# Starting the Server

	TOKEN_SALT=... go run .

Or with flags:

	go run . -p 3318 -token-salt dev-salt -require-quorum

Every client starts its own session (POST /sessions) and works on a private
copy of the seed. Idle sessions expire after SESSION_TTL.

# Terminal Mode

	go run . -mode tui

Runs the same screens in the terminal against a single session. Logs go to
LOG_FILE only.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - TOKEN_SALT (-token-salt): Salt for session keys and IP hashes, required to serve
  - SEED_FILE (-seed): YAML dataset to load instead of the embedded one
  - SESSION_TTL (-session-ttl): Idle session lifetime (default: 30m)
  - CURRENT_USER_ID (-user): Partner the demo acts as (default: partner-1)
  - REQUIRE_QUORUM (-require-quorum): Refuse to advance before every partner voted
  - LOG_LEVEL (-log-level), LOG_FILE (-log-file): Logging
  - MODE (-mode): serve or tui

A .env file in the working directory is loaded first.

# Architecture

  - models: Entities, enums and error kinds
  - ledger: Vote storage, quorum and tallies
  - pipeline: Stage transition engine over the session collections
  - views: Dashboard, pipeline partition, archive and portfolio queries
  - ui: Modal and toast state
  - seed: Embedded demo dataset
  - session: Per-client state, expiry and metrics
  - handlers, router, middleware: HTTP surface
  - tui: Terminal front end
  - tokens: Session token and hashing helpers
  - cliparse, logger: Configuration and logging

See package documentation for each component.
*/
package main
