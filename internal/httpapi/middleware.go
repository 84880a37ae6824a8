package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"

	"member-portal/accountd/internal/config"
)

const requestIDHeader = "X-Request-Id"

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(requestIDHeader) == "" {
			var b [12]byte
			_, _ = rand.Read(b[:])
			r.Header.Set(requestIDHeader, hex.EncodeToString(b[:]))
		}
		w.Header().Set(requestIDHeader, r.Header.Get(requestIDHeader))
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s in %s", r.Method, r.URL.Path, r.Header.Get(requestIDHeader), time.Since(start).String())
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				writeError(w, http.StatusInternalServerError, "panic", "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// adminAuthMiddleware gates the privileged surface (user listing, audit
// stream) behind the configured admin token. The auth transitions
// themselves stay public.
func adminAuthMiddleware(cfg config.Config, next http.Handler) http.Handler {
	adminToken := strings.TrimSpace(cfg.AdminToken)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users" && r.URL.Path != "/v1/events" {
			next.ServeHTTP(w, r)
			return
		}

		if adminToken == "" {
			// No token configured means no admin surface at all.
			writeError(w, http.StatusForbidden, "admin_disabled", "admin endpoints are not configured")
			return
		}

		if auth := r.Header.Get("Authorization"); auth != "" {
			const prefix = "Bearer "
			if strings.HasPrefix(auth, prefix) &&
				strings.TrimSpace(strings.TrimPrefix(auth, prefix)) == adminToken {
				next.ServeHTTP(w, r)
				return
			}
		}

		// EventSource clients cannot set headers; allow the token as a
		// query parameter on GET.
		if r.Method == http.MethodGet {
			if key := strings.TrimSpace(r.URL.Query().Get("token")); key != "" && key == adminToken {
				next.ServeHTTP(w, r)
				return
			}
		}

		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid admin token")
	})
}
