package xerrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garrettladley/terrahook/internal/xhttp"
	go_json "github.com/goccy/go-json"
)

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantMessage    string
		wantRetryAfter string
	}{
		{
			name:        "default message is status text",
			err:         MethodNotAllowed(),
			wantStatus:  http.StatusMethodNotAllowed,
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "custom message",
			err:         Unauthorized(WithMessage("Invalid signature")),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid signature",
		},
		{
			name:           "retry after rounded up",
			err:            TooManyRequests(WithRetryAfter(1500 * time.Millisecond)),
			wantStatus:     http.StatusTooManyRequests,
			wantMessage:    "Too Many Requests",
			wantRetryAfter: "2",
		},
		{
			name:        "plain error becomes opaque 500",
			err:         errors.New("connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal error",
		},
		{
			name:        "wrapped app error unwrapped",
			err:         errors.Join(errors.New("outer"), BadRequest(WithMessage("Invalid JSON"))),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(t.Context(), rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get(xhttp.ContentType); ct != xhttp.ApplicationJSON {
				t.Errorf("Content-Type = %q, want %q", ct, xhttp.ApplicationJSON)
			}
			if got := rec.Header().Get(xhttp.RetryAfter); got != tt.wantRetryAfter {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetryAfter)
			}

			var body map[string]string
			if err := go_json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] != tt.wantMessage {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMessage)
			}
		})
	}
}
