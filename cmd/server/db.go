package main

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var errNoDatabase = errors.New("database not configured")

// unconfiguredDB stands in for the pool when DATABASE_URL is unset. The
// webhook route is closed in that state, so it is only reached by mistake.
type unconfiguredDB struct{}

func (unconfiguredDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errNoDatabase
}
