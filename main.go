package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/danielhkuo/dealdesk/cliparse"
	"github.com/danielhkuo/dealdesk/logger"
	"github.com/danielhkuo/dealdesk/middleware"
	"github.com/danielhkuo/dealdesk/router"
	"github.com/danielhkuo/dealdesk/seed"
	"github.com/danielhkuo/dealdesk/session"
	"github.com/danielhkuo/dealdesk/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("dealdesk exited", "error", err)
		os.Exit(1)
	}
}

// run holds every deferred cleanup so os.Exit in main never skips one.
func run(args []string) error {
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	// The TUI owns the terminal, so logs only go to the file there
	logOpts := logger.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if cfg.Mode == cliparse.ModeServe {
		logOpts.Console = os.Stdout
	}
	closer := logger.Init(logOpts)
	defer closer.Close()

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, v ...any) {
		slog.Debug(fmt.Sprintf(format, v...))
	})); err != nil {
		slog.Warn("failed to set GOMAXPROCS", "error", err)
	}

	// Load the demo dataset
	var ds *seed.Dataset
	if cfg.SeedFile != "" {
		ds, err = seed.Load(cfg.SeedFile)
	} else {
		ds, err = seed.Default()
	}
	if err != nil {
		return fmt.Errorf("seed load: %w", err)
	}
	slog.Info("Seed ready", "applications", len(ds.Applications), "investments", len(ds.Investments))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store, err := session.NewStore(ds, session.Options{
		TTL:           cfg.SessionTTL,
		Salt:          cfg.TokenSalt,
		CurrentUserID: cfg.CurrentUserID,
		RequireQuorum: cfg.RequireQuorum,
		Registry:      reg,
	})
	if err != nil {
		return fmt.Errorf("session store setup: %w", err)
	}

	if cfg.Mode == cliparse.ModeTUI {
		return runTUI(store)
	}
	return serve(cfg, store, reg)
}

func runTUI(store *session.Store) error {
	_, sess, err := store.Create()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(tui.NewApp(sess), tea.WithAltScreen()).Run()
	return err
}

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 5 * time.Second

func serve(cfg cliparse.Config, store *session.Store, reg *prometheus.Registry) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store.Start(ctx)
	defer store.Close()

	server := &http.Server{
		Handler:           middleware.CORS(router.NewRouter(store, cfg, reg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.Port))
	if err != nil {
		return err
	}

	slog.Info("Listening", "port", cfg.Port, "require_quorum", cfg.RequireQuorum)
	if err := runServer(ctx, server, ln, shutdownTimeout); err != nil {
		return err
	}
	slog.Info("Server closed")
	return nil
}

// runServer serves on ln until ctx is done, then returns only once
// in-flight requests have finished or timeout has passed.
func runServer(ctx context.Context, server *http.Server, ln net.Listener, timeout time.Duration) error {
	shutdownErr := make(chan error, 1)
	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	err := server.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
