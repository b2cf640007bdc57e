package middleware

import (
	"net/http"
	"strings"

	"being/config"
)

// EnableCORS adds CORS headers for the dashboard. ALLOWED_ORIGINS is a
// comma-separated list; unset means any origin (development).
func EnableCORS(next http.HandlerFunc) http.HandlerFunc {
	allowed := map[string]bool{}
	for _, origin := range strings.Split(config.GetAllowedOrigins(), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed[origin] = true
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowed) == 0 {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}
