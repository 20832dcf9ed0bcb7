package xerrors

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/garrettladley/terrahook/internal/xhttp"
	"github.com/garrettladley/terrahook/internal/xslog"
	go_json "github.com/goccy/go-json"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError logs err and writes it as {"error": message}. Errors that are not
// an *Error become an opaque 500 so internal detail never reaches the caller.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := As(err)
	if appErr == nil {
		appErr = Internal(WithMessage("Internal error"), WithCause(err))
	}

	logError(ctx, appErr)

	xhttp.SetHeaderContentTypeApplicationJSON(w)

	if appErr.RateLimit != nil && appErr.RateLimit.RetryAfter > 0 {
		xhttp.SetHeaderRetryAfter(w, appErr.RateLimit.RetryAfter)
	}

	w.WriteHeader(appErr.StatusCode)

	_ = go_json.NewEncoder(w).Encode(errorResponse{Error: appErr.Message})
}

func logError(ctx context.Context, err *Error) {
	logger := xslog.FromContext(ctx)
	attrs := []any{
		xslog.HTTPStatus(err.StatusCode),
		slog.String("message", err.Message),
	}
	if err.Cause != nil {
		attrs = append(attrs, xslog.Error(err.Cause))
	}
	if err.RateLimit != nil {
		attrs = append(attrs, xslog.RetryAfter(err.RateLimit.RetryAfter))
	}

	switch err.StatusCode / 100 {
	case 5:
		logger.ErrorContext(ctx, "server error", attrs...)
	case 4:
		logger.WarnContext(ctx, "client error", attrs...)
	default:
		logger.InfoContext(ctx, "error response", attrs...)
	}
}
