package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by the per-entity "not found" sentinels of the
// repository package so callers can test for absence generically.
var ErrNotFound = errors.New("not found")

// ValidationError reports a domain check that failed before any statement
// was sent to the store. Store state is unaffected.
type ValidationError struct {
	Field  string // input field (json name) that failed
	Reason string // short, human readable reason
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// Invalid is a shorthand constructor for *ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConstraintKind classifies a store-side rejection.
type ConstraintKind int

const (
	// Uniqueness covers duplicate primary keys and unique indexes.
	Uniqueness ConstraintKind = iota + 1
	// ForeignKeyMissing means a referenced parent row does not exist.
	ForeignKeyMissing
	// ForeignKeyRestrict means a delete (or key change) was blocked by dependent rows.
	ForeignKeyRestrict
	// Check means a CHECK constraint rejected the row.
	Check
)

func (k ConstraintKind) String() string {
	switch k {
	case Uniqueness:
		return "uniqueness"
	case ForeignKeyMissing:
		return "foreign_key_missing"
	case ForeignKeyRestrict:
		return "foreign_key_restrict"
	case Check:
		return "check"
	default:
		return "unknown"
	}
}

// ConstraintViolation is returned when the store rejects a statement because
// of a schema rule. The core never pre-checks these; it classifies what the
// store reports.
type ConstraintViolation struct {
	Kind  ConstraintKind
	Table string // table the failing statement targeted
	Err   error  // driver error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %s violation: %v", e.Table, e.Kind, e.Err)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// ConnectionError is returned when the store cannot be reached or refuses
// the configured credentials.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("store connection failed (%s): %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsConstraint reports whether err is a ConstraintViolation of the given kind.
func IsConstraint(err error, kind ConstraintKind) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv) && cv.Kind == kind
}

// IsUniqueness, IsRestrict and IsForeignKeyMissing test for one constraint kind.
func IsUniqueness(err error) bool        { return IsConstraint(err, Uniqueness) }
func IsRestrict(err error) bool          { return IsConstraint(err, ForeignKeyRestrict) }
func IsForeignKeyMissing(err error) bool { return IsConstraint(err, ForeignKeyMissing) }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConnection reports whether err is a *ConnectionError.
func IsConnection(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
