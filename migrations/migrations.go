// Package migrations applies the embedded SQL schema files.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/bizdesk/internal/platform/db"
)

//go:embed *.sql
var Files embed.FS

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Versions lists the migration versions found in fsys in ascending order.
// A version is the file name without its .up.sql suffix.
func Versions(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), upSuffix) {
			continue
		}
		version := strings.TrimSuffix(e.Name(), upSuffix)
		if _, err := fs.Stat(fsys, version+downSuffix); err != nil {
			return nil, fmt.Errorf("migration %s has no down file", version)
		}
		out = append(out, version)
	}
	sort.Strings(out)
	return out, nil
}

// Pending returns the versions not yet recorded as applied.
func Pending(all []string, applied map[string]bool) []string {
	var out []string
	for _, v := range all {
		if !applied[v] {
			out = append(out, v)
		}
	}
	return out
}

// Up applies every pending migration, each in its own transaction.
func Up(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	all, err := Versions(Files)
	if err != nil {
		return nil, err
	}
	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return nil, err
	}
	var done []string
	for _, version := range Pending(all, applied) {
		if err := run(ctx, pool, version+upSuffix, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return done, err
		}
		done = append(done, version)
	}
	return done, nil
}

// Down reverts the most recently applied migration.
func Down(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return "", err
	}
	var latest string
	for v := range applied {
		if v > latest {
			latest = v
		}
	}
	if latest == "" {
		return "", nil
	}
	return latest, run(ctx, pool, latest+downSuffix, `DELETE FROM schema_migrations WHERE version = $1`, latest)
}

func appliedVersions(ctx context.Context, pool *pgxpool.Pool) (map[string]bool, error) {
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(versions))
	for _, v := range versions {
		out[v] = true
	}
	return out, nil
}

func run(ctx context.Context, pool *pgxpool.Pool, file, record, version string) error {
	body, err := fs.ReadFile(Files, file)
	if err != nil {
		return err
	}
	return db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		_, err := tx.Exec(ctx, record, version)
		return err
	})
}
