// Package migrations applies the embedded schema for the configured store.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/tikevents/tikevents/internal/database"
)

//go:embed mysql/*.sql postgres/*.sql sqlite/*.sql
var migrationFiles embed.FS

const ensureTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name       VARCHAR(255) NOT NULL PRIMARY KEY,
	applied_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Apply runs the dialect's embedded SQL files in filename order, skipping
// those already recorded in schema_migrations. Every file is idempotent, so
// re-running against a store created by hand is safe.
func Apply(ctx context.Context, p *database.Provider) error {
	dir := p.Dialect().Name
	names, err := Files(dir)
	if err != nil {
		return err
	}

	return p.Do(ctx, func(s *database.Session) error {
		if _, err := s.Exec(ctx, database.OpSchema, "schema_migrations", ensureTable); err != nil {
			return fmt.Errorf("ensure schema_migrations: %w", err)
		}

		for _, name := range names {
			var applied int
			if err := s.Get(ctx, &applied, `SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, name); err != nil {
				return fmt.Errorf("check migration %s: %w", name, err)
			}
			if applied > 0 {
				continue
			}

			raw, err := migrationFiles.ReadFile(dir + "/" + name)
			if err != nil {
				return fmt.Errorf("read migration %s: %w", name, err)
			}
			for i, stmt := range Statements(string(raw)) {
				if _, err := s.Exec(ctx, database.OpSchema, "", stmt); err != nil {
					return fmt.Errorf("exec migration %s (statement %d): %w", name, i+1, err)
				}
			}
			if _, err := s.Exec(ctx, database.OpInsert, "schema_migrations", `INSERT INTO schema_migrations (name) VALUES (?)`, name); err != nil {
				return fmt.Errorf("record migration %s: %w", name, err)
			}
		}
		return nil
	})
}

// Files lists the migration file names for a dialect, sorted.
func Files(dialect string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFiles, dialect)
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %w", dialect, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Statements splits a migration file into single statements. The MySQL
// driver runs one statement per call, so files are split for every store.
// Statements end with a semicolon at the end of a line; line comments are
// dropped.
func Statements(src string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(cur.String()), ";")
			out = append(out, stmt)
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}
