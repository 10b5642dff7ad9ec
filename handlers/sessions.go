// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dealdesk/middleware"
	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/session"
)

type SessionHandler struct {
	store *session.Store
}

func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	token, sess, err := h.store.Create()
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionToken: token,
		CurrentUser:  sess.CurrentUser(),
		ExpiresAt:    h.store.ExpiresAt(sess),
	})
}

// Reset handles POST /sessions/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}

	if err := sess.Reset(); err != nil {
		writeDomainError(w, sess, "reset", err)
		return
	}

	slog.Info("session reset", "session", sess.Tag())
	w.WriteHeader(http.StatusNoContent)
}
