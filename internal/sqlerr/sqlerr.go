// Package sqlerr normalizes database driver errors.
//
// It parses SQLSTATE codes from the Postgres driver and converts them into
// application failure signals with user-friendly messages (e.g. a unique
// violation on boards becomes a 400 "A board with this title already
// exists").
package sqlerr

import "fmt"

// Code is the application-level category of a database error.
type Code int

const (
	// Other covers every error not explicitly mapped.
	Other Code = iota

	// ForeignKeyViolation: a referenced row does not exist (SQLSTATE 23503).
	ForeignKeyViolation

	// UniqueViolation: a uniqueness constraint failed (SQLSTATE 23505).
	UniqueViolation

	// NotNullViolation: a required column was null (SQLSTATE 23502).
	NotNullViolation

	// CheckViolation: a CHECK constraint failed (SQLSTATE 23514).
	CheckViolation
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityOther Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// Error is the normalized database error. It keeps the original driver
// error for Unwrap so errors.As/Is still reach the pgconn type.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string // original SQLSTATE
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sqlerr: %s (SQLSTATE %s)", e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE string to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps the driver severity string to a Severity.
func MapSeverity(s string) Severity {
	switch s {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityOther
	}
}
