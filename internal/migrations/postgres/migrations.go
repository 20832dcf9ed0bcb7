package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const migrationsDir = "sql"

//go:embed sql/*.sql
var migrationsFS embed.FS

// DB is satisfied by *pgxpool.Pool and *pgx.Conn.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Apply runs every embedded migration not yet recorded in migrations_history,
// in file name order, and returns the names it applied.
func Apply(ctx context.Context, db DB) ([]string, error) {
	if err := createHistoryTable(ctx, db); err != nil {
		return nil, err
	}

	names, err := Names()
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, filename := range names {
		done, err := isMigrationApplied(ctx, db, filename)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+filename)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		for stmt := range strings.SplitSeq(string(content), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.Exec(ctx, stmt); err != nil {
				return applied, fmt.Errorf("failed to execute migration %s: %w", filename, err)
			}
		}

		if err := recordMigration(ctx, db, filename); err != nil {
			return applied, err
		}
		applied = append(applied, filename)
	}

	return applied, nil
}

// Names lists the embedded migration files in the order Apply runs them.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, nil
}

func createHistoryTable(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations_history (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("creating migrations history table: %w", err)
	}
	return nil
}

func isMigrationApplied(ctx context.Context, db DB, name string) (bool, error) {
	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM migrations_history WHERE name = $1", name).Scan(&count); err != nil {
		return false, fmt.Errorf("checking if migration applied: %w", err)
	}
	return count > 0, nil
}

func recordMigration(ctx context.Context, db DB, name string) error {
	if _, err := db.Exec(ctx, "INSERT INTO migrations_history (name) VALUES ($1)", name); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}
	return nil
}
