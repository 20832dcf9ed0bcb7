// Package record persists classified webhook payloads to Postgres.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/garrettladley/terrahook/internal/payload"
)

const (
	TableData = "terra_data_payloads"
	TableMisc = "terra_misc_payloads"
)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Record struct {
	Family      payload.Family
	TerraUserID *string
	PayloadType string
	Provider    *string
	ReferenceID *string
	StoragePath string
	RawPayload  []byte
	ReceivedAt  time.Time
}

type Writer struct {
	db    Execer
	newID func() uuid.UUID
}

func NewWriter(db Execer) *Writer {
	return &Writer{db: db, newID: uuid.New}
}

// Table reports which table rows of the given family land in.
func Table(f payload.Family) string {
	if f == payload.FamilyData {
		return TableData
	}
	return TableMisc
}

func (w *Writer) Insert(ctx context.Context, r Record) error {
	table := Table(r.Family)

	// table is one of two constants, never caller input
	query := `INSERT INTO ` + table + ` (
		id, terra_user_id, payload_type, provider, reference_id, storage_path, raw_payload, received_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := w.db.Exec(ctx, query,
		w.newID(),
		r.TerraUserID,
		r.PayloadType,
		r.Provider,
		r.ReferenceID,
		r.StoragePath,
		string(r.RawPayload),
		r.ReceivedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}
