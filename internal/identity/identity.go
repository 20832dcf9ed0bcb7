// Package identity links Terra accounts to internal users via device_connections.
package identity

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/garrettladley/terrahook/internal/xslog"
)

type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Strategy string

const (
	StrategyReference   Strategy = "reference_id"
	StrategyPlaceholder Strategy = "provider_placeholder"
)

type Link struct {
	TerraUserID *string
	ReferenceID *string
	Provider    *string
}

// Outcome reports what each strategy did. Rows is zero when a strategy was
// skipped, matched nothing or failed; Err holds the failure.
type Outcome struct {
	Attempted []Strategy
	Rows      map[Strategy]int64
	Errs      map[Strategy]error
}

func (o Outcome) Linked() bool {
	for _, n := range o.Rows {
		if n > 0 {
			return true
		}
	}
	return false
}

const (
	linkByReferenceSQL = `UPDATE device_connections
		SET terra_user_id = $1, is_active = true, sync_status = 'active', updated_at = $2
		WHERE user_id = $3`

	linkByReferenceAndProviderSQL = linkByReferenceSQL + ` AND lower(provider) = $4`

	// Only a provider with exactly one unlinked placeholder can be resolved
	// unambiguously, and never for a terra user that is already bound.
	linkPlaceholderSQL = `UPDATE device_connections
		SET terra_user_id = $1, is_active = true, sync_status = 'active', updated_at = $2
		WHERE lower(provider) = $3
		  AND terra_user_id IS NULL
		  AND NOT EXISTS (SELECT 1 FROM device_connections WHERE terra_user_id = $1)
		  AND (SELECT COUNT(*) FROM device_connections WHERE lower(provider) = $3 AND terra_user_id IS NULL) = 1`
)

type Linker struct {
	db  Execer
	now func() time.Time
}

func NewLinker(db Execer) *Linker {
	return &Linker{db: db, now: time.Now}
}

// Link tries the reference id first. The placeholder strategy only runs when
// that did not bind a row, so a failed reference update still falls back.
// Failures are logged and reported in the Outcome, never returned.
func (l *Linker) Link(ctx context.Context, link Link) Outcome {
	out := Outcome{Rows: map[Strategy]int64{}, Errs: map[Strategy]error{}}
	if link.TerraUserID == nil || *link.TerraUserID == "" {
		return out
	}

	logger := xslog.FromContext(ctx)
	at := l.now().UTC()

	if link.ReferenceID != nil && *link.ReferenceID != "" {
		query, args := linkByReferenceSQL, []any{*link.TerraUserID, at, *link.ReferenceID}
		if link.Provider != nil && *link.Provider != "" {
			query, args = linkByReferenceAndProviderSQL, append(args, *link.Provider)
		}
		l.run(ctx, &out, StrategyReference, query, args...)
	}

	if out.Rows[StrategyReference] == 0 && link.Provider != nil && *link.Provider != "" {
		l.run(ctx, &out, StrategyPlaceholder, linkPlaceholderSQL, *link.TerraUserID, at, *link.Provider)
		if err := out.Errs[StrategyPlaceholder]; err == nil && out.Rows[StrategyPlaceholder] == 0 {
			logger.DebugContext(ctx, "no unique unlinked placeholder for provider",
				xslog.Provider(link.Provider),
				xslog.TerraUserID(link.TerraUserID),
			)
		}
	}

	return out
}

func (l *Linker) run(ctx context.Context, out *Outcome, s Strategy, query string, args ...any) {
	out.Attempted = append(out.Attempted, s)

	tag, err := l.db.Exec(ctx, query, args...)
	if err != nil {
		out.Errs[s] = err
		xslog.FromContext(ctx).ErrorContext(ctx, "identity link failed",
			xslog.Strategy(string(s)),
			xslog.Error(err),
		)
		return
	}

	out.Rows[s] = tag.RowsAffected()
	if out.Rows[s] > 0 {
		xslog.FromContext(ctx).InfoContext(ctx, "linked terra user",
			xslog.Strategy(string(s)),
			xslog.RowsAffected(out.Rows[s]),
		)
	}
}
