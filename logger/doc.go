// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logger configures the process-wide slog logger: JSON records to
// the console and, optionally, to a size-rotated file via lumberjack.
//
//	closer := logger.Init(logger.Options{Level: cfg.LogLevel, Console: os.Stdout, File: cfg.LogFile})
//	defer closer.Close()
package logger
