package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/tikevents/tikevents/internal/model"
)

// Op names the kind of statement that failed. A foreign key failure means
// "parent missing" for inserts and updates but "dependents exist" for
// deletes, and some drivers report both with the same code.
type Op string

const (
	OpQuery  Op = "query"
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpSchema Op = "schema"
)

// MySQL server error numbers.
const (
	mysqlDupEntry          = 1062
	mysqlDupEntryWithKey   = 1586
	mysqlNoReferencedRow   = 1216
	mysqlRowIsReferenced   = 1217
	mysqlRowIsReferenced2  = 1451
	mysqlNoReferencedRow2  = 1452
	mysqlCheckViolated     = 3819
	mysqlOutOfRange        = 1264
	mysqlAccessDenied      = 1045
	mysqlDBAccessDenied    = 1044
	mysqlUnknownDatabase   = 1049
	mysqlTooManyConnection = 1040
)

// Classify translates a driver error into the model error taxonomy.
// Errors it does not recognise are returned unchanged.
func Classify(err error, op Op, table string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var (
		cv *model.ConstraintViolation
		ce *model.ConnectionError
	)
	if errors.As(err, &cv) || errors.As(err, &ce) {
		return err
	}

	if kind, ok := constraintKind(err, op); ok {
		return &model.ConstraintViolation{Kind: kind, Table: table, Err: err}
	}
	if isConnectionFailure(err) {
		return &model.ConnectionError{Op: string(op), Err: err}
	}
	return err
}

func constraintKind(err error, op Op) (model.ConstraintKind, bool) {
	fk := model.ForeignKeyMissing
	if op == OpDelete {
		fk = model.ForeignKeyRestrict
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDupEntry, mysqlDupEntryWithKey:
			return model.Uniqueness, true
		case mysqlNoReferencedRow, mysqlNoReferencedRow2:
			return model.ForeignKeyMissing, true
		case mysqlRowIsReferenced, mysqlRowIsReferenced2:
			return model.ForeignKeyRestrict, true
		case mysqlCheckViolated, mysqlOutOfRange:
			return model.Check, true
		}
		return 0, false
	}

	var pe *pq.Error
	if errors.As(err, &pe) {
		switch pe.Code {
		case "23505":
			return model.Uniqueness, true
		case "23503":
			return fk, true
		case "23514", "22003": // check, numeric out of range
			return model.Check, true
		}
		return 0, false
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return model.Uniqueness, true
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fk, true
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return model.Check, true
		}
		if se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
			return 0, false
		}
		// primary code only: fall back to the message
		msg := se.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return model.Uniqueness, true
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return fk, true
		case strings.Contains(msg, "CHECK constraint failed"):
			return model.Check, true
		}
	}
	return 0, false
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlAccessDenied, mysqlDBAccessDenied, mysqlUnknownDatabase, mysqlTooManyConnection:
			return true
		}
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		// 08 connection exception, 28 invalid authorization, 3D invalid catalog
		switch pe.Code.Class() {
		case "08", "28", "3D":
			return true
		}
		return pe.Code == "53300" // too_many_connections
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_PERM:
			return true
		}
	}
	return false
}
