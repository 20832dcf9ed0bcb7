package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/garrettladley/terrahook/internal/xhttp"
)

type CORSConfig struct {
	AllowedOrigin  string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS stamps the configured headers on every response and answers
// preflight OPTIONS requests with 204 without calling next.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(xhttp.AccessControlAllowOrigin, origin)
			h.Set(xhttp.AccessControlAllowMethods, methods)
			h.Set(xhttp.AccessControlAllowHeaders, headers)
			if cfg.MaxAge > 0 {
				h.Set(xhttp.AccessControlMaxAge, strconv.Itoa(cfg.MaxAge))
			}
			if origin != "*" {
				h.Add(xhttp.Vary, xhttp.Origin)
			}

			if r.Method == http.MethodOptions {
				xhttp.WriteNoContent(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
