// Package database owns the store connection: one connection per
// operation, opened on demand and released when the operation ends.
package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tikevents/tikevents/internal/config"
	"github.com/tikevents/tikevents/internal/model"
)

// Provider hands out store connections. The configuration is fixed at
// Open and never re-read.
type Provider struct {
	db      *sqlx.DB
	dialect Dialect
}

// Open prepares the connection pool for cfg and verifies the store is
// reachable. Failures are reported as *model.ConnectionError.
func Open(ctx context.Context, cfg config.DBConfig) (*Provider, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(dialect.DriverName, dialect.DSN(cfg))
	if err != nil {
		return nil, &model.ConnectionError{Op: "open", Err: err}
	}

	// Pool settings. MaxIdleConns=0 closes each connection as soon as the
	// operation that acquired it releases it.
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	p := &Provider{db: db, dialect: dialect}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

// Dialect reports which store the provider talks to.
func (p *Provider) Dialect() Dialect { return p.dialect }

// Acquire opens a dedicated connection. The caller must Close it.
func (p *Provider) Acquire(ctx context.Context) (*sqlx.Conn, error) {
	conn, err := p.db.Connx(ctx)
	if err != nil {
		return nil, &model.ConnectionError{Op: "acquire", Err: err}
	}
	return conn, nil
}

// Do runs fn on a freshly acquired connection and releases it afterwards.
// Statements run in autocommit mode.
func (p *Provider) Do(ctx context.Context, fn func(s *Session) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(&Session{q: conn, dialect: p.dialect})
}

// Tx runs fn inside a transaction on a freshly acquired connection. The
// transaction commits when fn returns nil and rolls back on any error or
// panic.
func (p *Provider) Tx(ctx context.Context, fn func(s *Session) error) (err error) {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return Classify(err, OpQuery, "")
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit: %w", Classify(cerr, OpQuery, ""))
		}
	}()

	return fn(&Session{q: tx, dialect: p.dialect})
}

// Ping checks that a connection can be established right now.
func (p *Provider) Ping(ctx context.Context) error {
	return p.Do(ctx, func(s *Session) error {
		var one int
		if err := s.Get(ctx, &one, "SELECT 1"); err != nil {
			return &model.ConnectionError{Op: "ping", Err: err}
		}
		return nil
	})
}

// Close releases the pool.
func (p *Provider) Close() error { return p.db.Close() }
