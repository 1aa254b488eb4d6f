package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const driverName = "postgres"

// Connect opens a pool and verifies the server is reachable.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Open returns a lazily connecting pool. Audits use it so that an
// unreachable instance surfaces as per-check errors instead of aborting.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// HostOf extracts the host part of a DSN for log lines, never the
// credentials.
func HostOf(dsn string) string {
	if at := strings.LastIndex(dsn, "@"); at >= 0 {
		rest := dsn[at+1:]
		if end := strings.IndexAny(rest, "/?"); end >= 0 {
			return rest[:end]
		}
		return rest
	}
	for _, field := range strings.Fields(dsn) {
		if host, ok := strings.CutPrefix(field, "host="); ok {
			return host
		}
	}
	return "unknown"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into a lower-cased LIKE pattern matching s as a
// literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func isDuplicateObject(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	// duplicate_table, unique_violation on pg_type when two sessions race
	// on CREATE TABLE IF NOT EXISTS
	return pqErr.Code == "42P07" || pqErr.Code == "23505"
}
