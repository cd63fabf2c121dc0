package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sawitpro/palmstore/internal/session"
)

// SessionHeader carries the storefront session id
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

// SessionResolver looks sessions up by id
type SessionResolver interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// RequireSession resolves the session named by the X-Session-ID header.
// Missing header yields 401, unknown session 404.
func RequireSession(sessions SessionResolver, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				writeError(w, http.StatusUnauthorized, "Session required")
				return
			}

			sess, err := sessions.Get(r.Context(), id)
			if err != nil {
				if errors.Is(err, session.ErrSessionNotFound) {
					writeError(w, http.StatusNotFound, "Session not found")
					return
				}
				logger.Error("failed to resolve session", "session_id", id, "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session installed by RequireSession
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey{}).(*session.Session)
	return sess
}

// WithSession installs sess on ctx
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
