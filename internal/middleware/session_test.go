package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sawitpro/palmstore/internal/session"
	"github.com/sawitpro/palmstore/pkg/logger"
)

type fakeResolver struct {
	sessions map[string]*session.Session
	err      error
}

func (f *fakeResolver) Get(ctx context.Context, id string) (*session.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	sess, ok := f.sessions[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return sess, nil
}

func TestRequireSession(t *testing.T) {
	known := &session.Session{ID: "sess-1"}
	resolver := &fakeResolver{sessions: map[string]*session.Session{"sess-1": known}}

	var seen *session.Session
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})

	handler := RequireSession(resolver, logger.New("error"))(testHandler)

	tests := []struct {
		name           string
		sessionID      string
		expectedStatus int
	}{
		{
			name:           "known session",
			sessionID:      "sess-1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing session header",
			sessionID:      "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown session",
			sessionID:      "sess-404",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/session/cart", nil)
			if tt.sessionID != "" {
				req.Header.Set(SessionHeader, tt.sessionID)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				if w.Body.String() != "success" {
					t.Errorf("body = %s, want success", w.Body.String())
				}
				if seen != known {
					t.Error("session was not installed on the request context")
				}
			}
		})
	}
}

func TestRequireSession_ResolverError(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("redis down")}
	handler := RequireSession(resolver, logger.New("error"))(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/session/cart", nil)
	req.Header.Set(SessionHeader, "sess-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestSessionFromContext_Empty(t *testing.T) {
	if SessionFromContext(context.Background()) != nil {
		t.Error("expected nil session")
	}
	sess := &session.Session{ID: "x"}
	if SessionFromContext(WithSession(context.Background(), sess)) != sess {
		t.Error("expected installed session")
	}
}
