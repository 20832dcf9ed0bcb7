// Package server assembles the HTTP routes for the webhook service.
package server

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/terrahook/internal/config"
	"github.com/garrettladley/terrahook/internal/metrics"
	"github.com/garrettladley/terrahook/internal/server/handler"
	servermw "github.com/garrettladley/terrahook/internal/server/middleware"
	"github.com/garrettladley/terrahook/internal/service/webhook"
	"github.com/garrettladley/terrahook/internal/xhttp"
	"github.com/garrettladley/terrahook/internal/xhttp/middleware"
)

const (
	RouteWebhook = "/webhooks/terra"
	RouteHealth  = "GET /health"
	RouteMetrics = "GET /metrics"

	corsMaxAge = 86400
)

type Deps struct {
	Config  config.Config
	Service webhook.Service
	Limiter servermw.RateLimiter
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewHandler returns the root handler. The webhook route runs
// CORS, method check, config check and rate limit, in that order.
func NewHandler(d Deps) http.Handler {
	cfg := d.Config

	webhookHandler := handler.NewWebhook(d.Service, cfg.Terra.SignatureHeader, cfg.Webhook.MaxBodyBytes)

	mux := http.NewServeMux()
	mux.Handle(RouteWebhook, middleware.Chain(http.HandlerFunc(webhookHandler.HandleWebhook),
		d.Metrics.Instrument,
		middleware.CORS(middleware.CORSConfig{
			AllowedOrigin:  cfg.Webhook.CORSOrigin,
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{xhttp.ContentType, xhttp.Authorization, cfg.Terra.SignatureHeader},
			MaxAge:         corsMaxAge,
		}),
		servermw.AllowMethods(http.MethodPost),
		servermw.RequireConfig(cfg.Missing),
		servermw.RateLimit(d.Limiter, d.Metrics),
	))
	mux.HandleFunc(RouteHealth, handler.HandleHealth)
	mux.Handle(RouteMetrics, d.Metrics.Handler())

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery,
		middleware.Logging,
		middleware.SecurityHeaders,
	)
}
