// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dealdesk/middleware"
	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/pipeline"
	"github.com/danielhkuo/dealdesk/session"
)

type InterviewHandler struct {
	store *session.Store
}

func NewInterviewHandler(store *session.Store) *InterviewHandler {
	return &InterviewHandler{store: store}
}

// List handles GET /interview
func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sess.Interview())
}

// UpdateDeliberation handles PATCH /interview/{id}/deliberation
func (h *InterviewHandler) UpdateDeliberation(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}

	var req models.UpdateDeliberationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	patch, err := pipeline.PatchFromRequest(req)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ev, err := sess.UpdateDeliberation(appID, patch)
	if err != nil {
		writeDomainError(w, sess, "update_deliberation", err)
		return
	}
	writeEvent(w, ev)
}

// MarkEmail handles POST /interview/{id}/email and POST /archive/{id}/email
func (h *InterviewHandler) MarkEmail(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}

	ev, err := sess.MarkEmailSent(appID)
	if err != nil {
		writeDomainError(w, sess, "mark_email_sent", err)
		return
	}

	slog.Info("founder email marked sent", "session", sess.Tag(), "application_id", appID)
	writeEvent(w, ev)
}

// Decide handles POST /interview/{id}/decision
func (h *InterviewHandler) Decide(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}

	var req models.DecisionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	decision, err := models.ParseFinalDecision(req.Decision)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ev, err := sess.Decide(appID, decision)
	if err != nil {
		writeDomainError(w, sess, "decide", err)
		return
	}

	slog.Info("decision recorded", "session", sess.Tag(), "application_id", appID, "decision", decision)
	writeEvent(w, ev)
}
