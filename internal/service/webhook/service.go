package webhook

import (
	"context"

	"github.com/garrettladley/terrahook/internal/payload"
)

type ProcessRequest struct {
	Body      []byte
	Signature string
}

// Result describes an accepted delivery. Path is the archive key, reported
// even when the archive write itself failed.
type Result struct {
	Type        string
	Family      payload.Family
	TerraUserID *string
	Provider    *string
	ReferenceID *string
	Path        string
	Degraded    []string
}

type Service interface {
	// ProcessWebhook verifies the delivery signature, parses the payload and
	// performs the archive, record, link and notify writes.
	// Returns signature.ErrMissingSecret, signature.ErrMissingSignature or
	// signature.ErrInvalidSignature when the caller cannot be authenticated,
	// and payload.ErrInvalidJSON when the body is not JSON. Failed writes
	// are logged and listed in Result.Degraded; they never produce an error.
	ProcessWebhook(ctx context.Context, req ProcessRequest) (Result, error)
}
