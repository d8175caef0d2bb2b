package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

const defaultPingTimeout = 5 * time.Second

type querier interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// Session is one connection (or one transaction) lent to an operation.
// Queries are written with ? placeholders and rebound for the dialect;
// errors come back already classified.
type Session struct {
	q       querier
	dialect Dialect
}

// Exec runs a statement against table and returns the affected row count.
func (s *Session) Exec(ctx context.Context, op Op, table, query string, args ...any) (int64, error) {
	res, err := s.q.ExecContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return 0, Classify(err, op, table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Insert runs an INSERT and returns the generated id of the new row.
func (s *Session) Insert(ctx context.Context, table, query string, args ...any) (int64, error) {
	if s.dialect.Returning {
		var id int64
		err := s.q.QueryRowxContext(ctx, s.dialect.Rebind(query+" RETURNING id"), args...).Scan(&id)
		if err != nil {
			return 0, Classify(err, OpInsert, table)
		}
		return id, nil
	}
	res, err := s.q.ExecContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return 0, Classify(err, OpInsert, table)
	}
	return res.LastInsertId()
}

// Get scans a single row into dest. sql.ErrNoRows is passed through.
func (s *Session) Get(ctx context.Context, dest any, query string, args ...any) error {
	err := sqlx.GetContext(ctx, s.q, dest, s.dialect.Rebind(query), args...)
	return Classify(err, OpQuery, "")
}

// Select scans every row into the slice pointed to by dest.
func (s *Session) Select(ctx context.Context, dest any, query string, args ...any) error {
	err := sqlx.SelectContext(ctx, s.q, dest, s.dialect.Rebind(query), args...)
	return Classify(err, OpQuery, "")
}
