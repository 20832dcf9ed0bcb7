// Package metrics exposes Prometheus instrumentation for the webhook endpoint.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garrettladley/terrahook/internal/xhttp/middleware"
)

const namespace = "terrahook"

// Degraded write steps.
const (
	StepArchive = "archive"
	StepRecord  = "record"
	StepLink    = "link"
	StepNotify  = "notify"
)

type Metrics struct {
	registry *prometheus.Registry

	responses      *prometheus.CounterVec
	duration       prometheus.Histogram
	payloads       *prometheus.CounterVec
	degradedWrites *prometheus.CounterVec
	rateLimited    prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		responses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_responses_total",
			Help:      "Webhook responses by HTTP status code.",
		}, []string{"code"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "webhook_duration_seconds",
			Help:      "Time spent handling webhook requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		payloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_total",
			Help:      "Accepted payloads by family.",
		}, []string{"family"}),
		degradedWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_writes_total",
			Help:      "Post-verification writes that failed while the request still succeeded.",
		}, []string{"step"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-address rate limiter.",
		}),
	}
}

// TrackGauge registers a gauge whose value is read from fn at scrape time.
func (m *Metrics) TrackGauge(name, help string, fn func() float64) {
	if m == nil {
		return
	}
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn)
}

func (m *Metrics) DegradedWrite(step string) {
	if m == nil {
		return
	}
	m.degradedWrites.WithLabelValues(step).Inc()
}

func (m *Metrics) Payload(family string) {
	if m == nil {
		return
	}
	m.payloads.WithLabelValues(family).Inc()
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// Instrument counts responses by status code and observes handling time.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := middleware.NewStatusRecorder(w)

		next.ServeHTTP(rec, r)

		m.duration.Observe(time.Since(start).Seconds())
		m.responses.WithLabelValues(strconv.Itoa(rec.Status)).Inc()
	})
}
