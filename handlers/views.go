// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/dealdesk/middleware"
	"github.com/danielhkuo/dealdesk/session"
	"github.com/danielhkuo/dealdesk/views"
)

// ViewHandler serves the read-only screens.
type ViewHandler struct {
	store *session.Store
}

func NewViewHandler(store *session.Store) *ViewHandler {
	return &ViewHandler{store: store}
}

// Dashboard handles GET /dashboard
func (h *ViewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sess.Dashboard())
}

// Partners handles GET /partners
func (h *ViewHandler) Partners(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sess.Partners())
}

// Notifications handles GET /notifications
func (h *ViewHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sess.Notifications())
}

// Archive handles GET /archive?q=&sort=
func (h *ViewHandler) Archive(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	key, err := views.ParseArchiveSort(q.Get("sort"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := sess.Archive(q.Get("q"), key)
	if err != nil {
		writeDomainError(w, sess, "archive", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// Portfolio handles GET /portfolio?q=&sort=
func (h *ViewHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(h.store, w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	key, err := views.ParsePortfolioSort(q.Get("sort"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := sess.Portfolio(q.Get("q"), key)
	if err != nil {
		writeDomainError(w, sess, "portfolio", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}
