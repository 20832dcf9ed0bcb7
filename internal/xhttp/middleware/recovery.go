package middleware

import (
	"net/http"

	"github.com/garrettladley/terrahook/internal/xerrors"
	"github.com/garrettladley/terrahook/internal/xslog"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				xslog.FromContext(r.Context()).ErrorContext(
					r.Context(),
					"panic recovered",
					xslog.RequestGroup(r),
					xslog.ErrorGroupWithStack(err),
				)
				xerrors.WriteError(r.Context(), w, xerrors.Internal(xerrors.WithMessage("Internal error")))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
