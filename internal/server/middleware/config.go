package middleware

import (
	"net/http"
	"strings"

	"github.com/garrettladley/terrahook/internal/xerrors"
	"github.com/garrettladley/terrahook/internal/xslog"
)

// RequireConfig answers 500 naming the required settings that missing reports.
func RequireConfig(missing func() []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if names := missing(); len(names) > 0 {
				ctx := xslog.With(r.Context(), xslog.Missing(names))
				xerrors.WriteError(ctx, w, xerrors.Internal(
					xerrors.WithMessage("Server misconfigured: missing "+strings.Join(names, ", ")),
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
