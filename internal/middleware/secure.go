package middleware

import (
	"log/slog"
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders sets browser hardening headers on every response
func SecureHeaders(production bool, logger *slog.Logger) func(next http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !production,
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sm.Process(w, r); err != nil {
				logger.Warn("secure headers blocked request", "error", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
