package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/garrettladley/terrahook/internal/xerrors"
)

// AllowMethods rejects requests whose method is not listed with 405.
func AllowMethods(methods ...string) func(http.Handler) http.Handler {
	allow := strings.Join(methods, ", ")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(methods, r.Method) {
				w.Header().Set("Allow", allow)
				xerrors.WriteError(r.Context(), w, xerrors.MethodNotAllowed(xerrors.WithMessage("Method Not Allowed")))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
