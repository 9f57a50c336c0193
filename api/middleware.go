package api

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// IdentityHeader is the out-of-band sender identity carried on every request
// that acts as a participant. The room has no sessions; the header value is
// the participant's display name.
const IdentityHeader = "User"

// SenderIdentity returns the trimmed identity header value, empty if absent
func SenderIdentity(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(IdentityHeader))
}

// Middleware sets the response content type and logs each request
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		zap.S().Debugw("request",
			"method", r.Method,
			"url", r.URL,
		)
		next.ServeHTTP(w, r)
	})
}
