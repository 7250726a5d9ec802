package api

import (
	"github.com/go-json-experiment/json"
	"net/http"
	"strings"

	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
)

// writeRateLimit limits mutating prompt requests per client IP.
// Reads and non-prompt routes pass through unthrottled.
func (s *Server) writeRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutatingPromptRequest(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := getClientIP(r)
		if !s.writeLimiter.Allow(key) {
			s.logger.Warn("rate limit exceeded",
				"ip", key,
				"method", r.Method,
				"path", r.URL.Path,
			)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.MarshalWrite(w, map[string]string{
				"code":    string(domainerrors.CodeRateLimited),
				"message": "Too many requests. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isMutatingPromptRequest reports whether the request writes prompt data.
func isMutatingPromptRequest(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return false
	}
	return strings.HasPrefix(r.URL.Path, "/api/v1/prompts")
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	// X-Forwarded-For may contain multiple IPs; the first is the client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr (strip port).
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i >= 0 {
		return ip[:i]
	}
	return ip
}
