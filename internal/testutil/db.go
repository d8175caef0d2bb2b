// Package testutil provides a migrated store for package tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tikevents/tikevents/internal/config"
	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/database/migrations"
)

// tables in child-first order
var tables = []string{
	"sales", "tickets_vip", "tickets_standard", "tickets", "event_artists",
	"events", "artists", "seats", "sectors", "venues", "buyers",
}

// NewProvider returns a provider on a freshly migrated, empty store.
//
// By default every test gets its own SQLite file under t.TempDir(). Setting
// TEST_DB_DRIVER and TEST_DB_DSN points the tests at a MySQL or PostgreSQL
// server instead; the test is skipped when that server is unreachable and
// all tables are emptied before it runs.
func NewProvider(t *testing.T) *database.Provider {
	t.Helper()

	cfg := config.DBConfig{
		Driver:      config.DriverSQLite,
		Name:        filepath.Join(t.TempDir(), "tikevents.db"),
		PingTimeout: 5 * time.Second,
	}
	external := false
	if drv := os.Getenv("TEST_DB_DRIVER"); drv != "" && drv != config.DriverSQLite {
		cfg = config.DBConfig{Driver: drv, DSN: os.Getenv("TEST_DB_DSN"), PingTimeout: 5 * time.Second, MaxOpenConns: 4}
		external = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := database.Open(ctx, cfg)
	if err != nil {
		if external {
			t.Skipf("skipping store tests: %v", err)
		}
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	if err := migrations.Apply(ctx, p); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if external {
		truncateAll(t, ctx, p)
	}
	return p
}

func truncateAll(t *testing.T, ctx context.Context, p *database.Provider) {
	t.Helper()
	err := p.Do(ctx, func(s *database.Session) error {
		for _, table := range tables {
			if _, err := s.Exec(ctx, database.OpDelete, table, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

// Exec runs a raw statement, for tests that need to corrupt or inspect the
// store behind the repositories' back.
func Exec(t *testing.T, p *database.Provider, query string, args ...any) int64 {
	t.Helper()
	ctx := context.Background()
	var n int64
	err := p.Do(ctx, func(s *database.Session) error {
		var err error
		n, err = s.Exec(ctx, database.OpQuery, "", query, args...)
		return err
	})
	if err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
	return n
}

// Count returns SELECT COUNT(*) for the given query.
func Count(t *testing.T, p *database.Provider, query string, args ...any) int {
	t.Helper()
	ctx := context.Background()
	var n int
	err := p.Do(ctx, func(s *database.Session) error {
		return s.Get(ctx, &n, query, args...)
	})
	if err != nil {
		t.Fatalf("count %q: %v", query, err)
	}
	return n
}
