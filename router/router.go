// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/dealdesk/cliparse"
	"github.com/danielhkuo/dealdesk/handlers"
	"github.com/danielhkuo/dealdesk/middleware"
	"github.com/danielhkuo/dealdesk/session"
)

func NewRouter(store *session.Store, cfg cliparse.Config, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	logs := middleware.NewLogger(cfg.TokenSalt)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(store)
	pipelineHandler := handlers.NewPipelineHandler(store)
	interviewHandler := handlers.NewInterviewHandler(store)
	viewHandler := handlers.NewViewHandler(store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if reg != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	// Sessions
	mux.HandleFunc("POST /sessions", logs.WithLogging(sessionHandler.Create))
	mux.HandleFunc("POST /sessions/reset", logs.WithLogging(sessionHandler.Reset))

	// Read-only screens
	mux.HandleFunc("GET /partners", logs.WithLogging(viewHandler.Partners))
	mux.HandleFunc("GET /dashboard", logs.WithLogging(viewHandler.Dashboard))
	mux.HandleFunc("GET /notifications", logs.WithLogging(viewHandler.Notifications))
	mux.HandleFunc("GET /archive", logs.WithLogging(viewHandler.Archive))
	mux.HandleFunc("GET /portfolio", logs.WithLogging(viewHandler.Portfolio))

	// Pipeline
	mux.HandleFunc("GET /pipeline", logs.WithLogging(pipelineHandler.GetPipeline))
	mux.HandleFunc("POST /pipeline/{id}/votes", logs.WithLogging(pipelineHandler.CastVote))
	mux.HandleFunc("POST /pipeline/{id}/advance", logs.WithLogging(pipelineHandler.Advance))

	// Interview
	mux.HandleFunc("GET /interview", logs.WithLogging(interviewHandler.List))
	mux.HandleFunc("PATCH /interview/{id}/deliberation", logs.WithLogging(interviewHandler.UpdateDeliberation))
	mux.HandleFunc("POST /interview/{id}/email", logs.WithLogging(interviewHandler.MarkEmail))
	mux.HandleFunc("POST /interview/{id}/decision", logs.WithLogging(interviewHandler.Decide))

	// Archive
	mux.HandleFunc("POST /archive/{id}/email", logs.WithLogging(interviewHandler.MarkEmail))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dealdesk API v1"))
	})

	return mux
}
