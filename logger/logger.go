// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logger

import (
	"io"
	"log/slog"

	"gopkg.in/lumberjack.v2"
)

// Options select where logs go. With neither Console nor File set, logs are
// discarded.
type Options struct {
	Level   slog.Level
	Console io.Writer
	File    string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a JSON slog logger writing to the configured destinations. The
// returned closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 7),
			LocalTime:  true,
		}
		writers = append(writers, lj)
		closer = lj
	}

	var w io.Writer = io.Discard
	if len(writers) > 0 {
		w = io.MultiWriter(writers...)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level})
	return slog.New(h), closer
}

// Init installs New(opts) as the default slog logger.
func Init(opts Options) io.Closer {
	l, closer := New(opts)
	slog.SetDefault(l)
	slog.Info("logger initialized", "level", opts.Level.String(), "file", opts.File)
	return closer
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
