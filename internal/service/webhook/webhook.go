package webhook

import (
	"context"
	"time"

	"github.com/garrettladley/terrahook/internal/archive"
	"github.com/garrettladley/terrahook/internal/identity"
	"github.com/garrettladley/terrahook/internal/metrics"
	"github.com/garrettladley/terrahook/internal/notify"
	"github.com/garrettladley/terrahook/internal/payload"
	"github.com/garrettladley/terrahook/internal/record"
	"github.com/garrettladley/terrahook/internal/signature"
	"github.com/garrettladley/terrahook/internal/xslog"
)

type Archiver interface {
	Write(ctx context.Context, obj archive.Object) (string, error)
}

type RecordWriter interface {
	Insert(ctx context.Context, r record.Record) error
}

type IdentityLinker interface {
	Link(ctx context.Context, link identity.Link) identity.Outcome
}

type Notifier interface {
	Publish(ctx context.Context, m notify.Message) error
}

type Processor struct {
	verifier *signature.Verifier
	archive  Archiver
	records  RecordWriter
	linker   IdentityLinker
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

var _ Service = (*Processor)(nil)

type Option func(*Processor)

// WithNotifier announces stored payloads. Without it nothing is published.
func WithNotifier(n Notifier) Option {
	return func(p *Processor) { p.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

func NewProcessor(verifier *signature.Verifier, archive Archiver, records RecordWriter, linker IdentityLinker, opts ...Option) *Processor {
	p := &Processor{
		verifier: verifier,
		archive:  archive,
		records:  records,
		linker:   linker,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) ProcessWebhook(ctx context.Context, req ProcessRequest) (Result, error) {
	if err := p.verifier.Verify(req.Body, req.Signature); err != nil {
		return Result{}, err
	}

	env, err := payload.Parse(req.Body)
	if err != nil {
		return Result{}, err
	}

	receivedAt := p.now().UTC()
	res := Result{
		Type:        env.Type(),
		Family:      env.Family(),
		TerraUserID: env.TerraUserID,
		Provider:    env.Provider,
		ReferenceID: env.ReferenceID,
	}

	ctx = xslog.With(ctx,
		xslog.EventType(res.Type),
		xslog.Family(string(res.Family)),
		xslog.TerraUserID(res.TerraUserID),
		xslog.Provider(res.Provider),
		xslog.ReferenceID(res.ReferenceID),
	)
	path, err := p.archive.Write(ctx, archive.Object{
		Body:        req.Body,
		EventType:   res.Type,
		TerraUserID: res.TerraUserID,
		ReceivedAt:  receivedAt,
	})
	res.Path = path
	ctx = xslog.With(ctx, xslog.ArchivePath(path))
	if err != nil {
		// the payload is logged so it can be recovered without the archive
		p.degraded(ctx, &res, metrics.StepArchive, err, xslog.Size(len(req.Body)), xslog.Payload(req.Body))
	}

	recorded := true
	if err := p.records.Insert(ctx, record.Record{
		Family:      res.Family,
		TerraUserID: res.TerraUserID,
		PayloadType: res.Type,
		Provider:    res.Provider,
		ReferenceID: res.ReferenceID,
		StoragePath: path,
		RawPayload:  env.Document,
		ReceivedAt:  receivedAt,
	}); err != nil {
		recorded = false
		p.degraded(ctx, &res, metrics.StepRecord, err, xslog.Table(record.Table(res.Family)))
	}

	out := p.linker.Link(ctx, identity.Link{
		TerraUserID: res.TerraUserID,
		ReferenceID: res.ReferenceID,
		Provider:    res.Provider,
	})
	for _, strategy := range out.Attempted {
		if err := out.Errs[strategy]; err != nil {
			p.degraded(ctx, &res, metrics.StepLink, err, xslog.Strategy(string(strategy)))
		}
	}

	if recorded && p.notifier != nil {
		if err := p.notifier.Publish(ctx, notify.Message{
			Type:        res.Type,
			Family:      res.Family,
			TerraUserID: res.TerraUserID,
			Provider:    res.Provider,
			ReferenceID: res.ReferenceID,
			StoragePath: path,
			ReceivedAt:  receivedAt,
		}); err != nil {
			p.degraded(ctx, &res, metrics.StepNotify, err)
		}
	}

	p.metrics.Payload(string(res.Family))
	xslog.FromContext(ctx).InfoContext(ctx, "processed webhook")

	return res, nil
}

func (p *Processor) degraded(ctx context.Context, res *Result, step string, err error, attrs ...any) {
	if len(res.Degraded) == 0 || res.Degraded[len(res.Degraded)-1] != step {
		res.Degraded = append(res.Degraded, step)
	}
	p.metrics.DegradedWrite(step)

	attrs = append([]any{xslog.Step(step), xslog.ErrorGroup(err)}, attrs...)
	xslog.FromContext(ctx).ErrorContext(ctx, "webhook write failed", attrs...)
}
