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

type PipelineHandler struct {
	store *session.Store
}

func NewPipelineHandler(store *session.Store) *PipelineHandler {
	return &PipelineHandler{store: store}
}

// GetPipeline handles GET /pipeline
// Votes stay sealed until every partner has voted
func (h *PipelineHandler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sess.Pipeline().Sealed())
}

// CastVote handles POST /pipeline/{id}/votes
func (h *PipelineHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	if appID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "application id is required")
		return
	}

	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	value, err := models.ParseVoteValue(req.Vote)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ev, err := sess.CastVote(appID, value, req.Notes)
	if err != nil {
		writeDomainError(w, sess, "cast_vote", err)
		return
	}

	slog.Info("vote recorded", "session", sess.Tag(), "application_id", appID, "vote", value)
	writeEvent(w, ev)
}

// Advance handles POST /pipeline/{id}/advance
func (h *PipelineHandler) Advance(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	if appID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "application id is required")
		return
	}

	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}

	ev, err := sess.AdvanceToInterview(appID)
	if err != nil {
		writeDomainError(w, sess, "advance", err)
		return
	}

	slog.Info("application advanced", "session", sess.Tag(), "application_id", appID)
	writeEvent(w, ev)
}
