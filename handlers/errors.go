// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dealdesk/middleware"
	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/pipeline"
	"github.com/danielhkuo/dealdesk/session"
	"github.com/danielhkuo/dealdesk/ui"
)

// requireSession looks up the caller's session from the X-Session-Token
// header and writes a 401 when there is none.
func requireSession(store *session.Store, w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := store.Get(r.Header.Get(middleware.SessionHeader))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session token")
		return nil, false
	}
	return sess, true
}

// writeDomainError maps an error kind onto a status code.
func writeDomainError(w http.ResponseWriter, sess *session.Session, op string, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrQuorumNotMet):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrPartnerNotFound):
		// The acting partner is configuration, not a record that can move.
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, ui.StaleMessage)
	case errors.Is(err, models.ErrInvalidState):
		middleware.ErrorResponse(w, http.StatusConflict, ui.StaleMessage)
	default:
		slog.Error("operation failed", "op", op, "session", sess.Tag(), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}
	slog.Debug("operation rejected", "op", op, "session", sess.Tag(), "error", err)
}

// writeEvent answers a successful mutation with its confirmation.
func writeEvent(w http.ResponseWriter, ev pipeline.Event) {
	msg, tone := ui.Message(ev)
	middleware.JSONResponse(w, http.StatusOK, models.EventResponse{
		Event:   string(ev.Kind),
		Message: msg,
		Tone:    string(tone),
	})
}
