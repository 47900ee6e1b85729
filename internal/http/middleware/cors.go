package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowedHeaders = "Content-Type, X-CSRF-Token, X-Request-ID"
	corsAllowedMethods = "GET, POST, OPTIONS"
	corsMaxAge         = "600"
)

// CORS lets browsers on the listed origins call the JSON API. "*" echoes any
// origin back. An empty list disables the middleware.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAny, allow := parseOrigins(allowedOrigins)

	return func(next http.Handler) http.Handler {
		if !allowAny && len(allow) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			_, listed := allow[origin]
			if !allowAny && !listed {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowedMethods)
			h.Set("Access-Control-Max-Age", corsMaxAge)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseOrigins(origins []string) (bool, map[string]struct{}) {
	allowAny := false
	allow := map[string]struct{}{}
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		switch origin {
		case "":
		case "*":
			allowAny = true
		default:
			allow[origin] = struct{}{}
		}
	}
	return allowAny, allow
}
