package repository

import (
	"context"
	"strings"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// updateSet collects the columns of a sparse UPDATE. Column names are
// always literals supplied by the repository; values are only ever bound.
type updateSet struct {
	table string
	cols  []string
	args  []any
	err   error
}

func newUpdate(table string) *updateSet { return &updateSet{table: table} }

// column describes one updatable column: its name in the table, the json
// name reported in validation errors, whether it may be cleared and the
// validate tag a new value must pass.
type column struct {
	name     string
	field    string
	nullable bool
	tag      string
}

// set adds f to the statement when it was supplied.
func set[T any](u *updateSet, c column, f model.Field[T]) {
	if u.err != nil || !f.IsSet() {
		return
	}
	if f.IsNull() {
		if !c.nullable {
			u.err = model.Invalid(c.field, "cannot be cleared")
			return
		}
	} else if err := checkValue(c.field, f.Arg(), c.tag); err != nil {
		u.err = err
		return
	}
	u.cols = append(u.cols, c.name)
	u.args = append(u.args, f.Arg())
}

// statement renders "UPDATE t SET a = ?, b = ? WHERE id = ?".
func (u *updateSet) statement() string {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(u.table)
	b.WriteString(" SET ")
	for i, c := range u.cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c)
		b.WriteString(" = ?")
	}
	b.WriteString(" WHERE id = ?")
	return b.String()
}

// exec applies the update to row id. An empty set returns 0 without
// touching the store.
func (u *updateSet) exec(ctx context.Context, p *database.Provider, id int64) (int64, error) {
	if u.err != nil {
		return 0, u.err
	}
	if len(u.cols) == 0 {
		return 0, nil
	}
	args := append(u.args, id)
	var n int64
	err := p.Do(ctx, func(s *database.Session) error {
		var err error
		n, err = s.Exec(ctx, database.OpUpdate, u.table, u.statement(), args...)
		return err
	})
	return n, err
}
