// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	logs := middleware.NewLogger(cfg.TokenSalt)
	mux.HandleFunc("GET /pipeline", logs.WithLogging(handler))

Logs method, path, status and duration_ms, plus a salted hash of the client
IP and, when the X-Session-Token header is present, the session's salted
tag. Raw addresses and tokens never reach the log. Responses with a 5xx
status are logged at warn level.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, OPTIONS with headers Content-Type and
X-Session-Token. Preflight requests get 204 No Content without reaching
the router.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (at most 64 KiB; an empty body is ErrEmptyBody):

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
