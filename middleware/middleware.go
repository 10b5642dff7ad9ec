// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/tokens"
)

// SessionHeader carries the session token on every session-scoped request.
const SessionHeader = "X-Session-Token"

// maxBodyBytes caps request bodies; the largest is a deliberation patch.
const maxBodyBytes = 64 << 10

// ErrEmptyBody is returned by ParseJSONBody when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

var (
	corsMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions,
	}, ", ")
	corsHeaders = "Content-Type, " + SessionHeader
)

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logger logs requests. Client addresses and session tokens are only ever
// logged as salted hashes.
type Logger struct {
	salt string
}

func NewLogger(salt string) *Logger {
	return &Logger{salt: salt}
}

// WithLogging wraps a handler with request logging. Server errors are
// logged at warn level.
func (l *Logger) WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		attrs := l.requestAttrs(r)

		slog.Debug("request started", attrs...)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		attrs = append(attrs, "status", rec.status, "duration_ms", time.Since(start).Milliseconds())
		slog.Log(r.Context(), level, "request completed", attrs...)
	}
}

func (l *Logger) requestAttrs(r *http.Request) []any {
	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"client", tokens.HashIP(GetClientIP(r), l.salt),
	}
	if token := r.Header.Get(SessionHeader); token != "" {
		attrs = append(attrs, "session", tokens.SessionTag(token, l.salt))
	}
	return attrs
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a models.ErrorResponse whose error field is the
// status text.
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ParseJSONBody decodes at most maxBodyBytes of the request body into v.
func ParseJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// CORS lets a browser client send the session header cross-origin.
// Preflight requests are answered here and never reach next.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		} else {
			h.Add("Vary", "Origin")
		}

		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", corsMethods)
		h.Set("Access-Control-Allow-Headers", corsHeaders)
		h.Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then
// the host part of RemoteAddr.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
