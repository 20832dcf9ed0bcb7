package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/garrettladley/terrahook/internal/payload"
	"github.com/garrettladley/terrahook/internal/service/webhook"
	"github.com/garrettladley/terrahook/internal/signature"
	"github.com/garrettladley/terrahook/internal/xerrors"
	"github.com/garrettladley/terrahook/internal/xhttp"
)

const statusOK = "ok"

type Webhook struct {
	service         webhook.Service
	signatureHeader string
	maxBodyBytes    int64
}

func NewWebhook(service webhook.Service, signatureHeader string, maxBodyBytes int64) *Webhook {
	return &Webhook{
		service:         service,
		signatureHeader: signatureHeader,
		maxBodyBytes:    maxBodyBytes,
	}
}

type webhookResponse struct {
	Status      string  `json:"status"`
	Type        string  `json:"type"`
	TerraUserID *string `json:"terraUserId"`
	Provider    *string `json:"provider"`
	Path        string  `json:"path"`
}

// HandleWebhook handles POST /webhooks/terra requests.
func (h *Webhook) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("Invalid body"), xerrors.WithCause(err)))
		return
	}

	res, err := h.service.ProcessWebhook(ctx, webhook.ProcessRequest{
		Body:      body,
		Signature: signature.Header(r.Header, h.signatureHeader),
	})
	if err != nil {
		xerrors.WriteError(ctx, w, toHTTPError(err))
		return
	}

	xhttp.WriteOK(w, webhookResponse{
		Status:      statusOK,
		Type:        res.Type,
		TerraUserID: res.TerraUserID,
		Provider:    res.Provider,
		Path:        res.Path,
	})
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, signature.ErrMissingSignature):
		return xerrors.Unauthorized(xerrors.WithMessage("Missing signature"), xerrors.WithCause(err))
	case errors.Is(err, signature.ErrInvalidSignature):
		return xerrors.Unauthorized(xerrors.WithMessage("Invalid signature"), xerrors.WithCause(err))
	case errors.Is(err, signature.ErrMissingSecret):
		return xerrors.Unauthorized(xerrors.WithMessage("Signature verification failed"), xerrors.WithCause(err))
	case errors.Is(err, payload.ErrInvalidJSON):
		return xerrors.BadRequest(xerrors.WithMessage("Invalid JSON"), xerrors.WithCause(err))
	default:
		return err
	}
}
