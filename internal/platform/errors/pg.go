package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the document store can hit
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22021": ErrorCodeInvalidArgument, // character_not_in_repertoire
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"40001": ErrorCodeDB,              // serialization_failure
	"40P01": ErrorCodeDB,              // deadlock_detected
	"55P03": ErrorCodeDB,              // lock_not_available
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

var pgRetryable = map[string]bool{"40001": true, "40P01": true, "55P03": true}

// PgError returns the *pgconn.PgError in err's chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports a unique violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, "23505") }

// DBErrorCode classifies a Postgres error; ok is false for anything else
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, ok := pgCodes[pgErr.Code]; ok {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with its mapped code and the field Postgres blames
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return attachPgField(Wrap(err, code, msg))
}

// attachPgField names the column, or the last token of the constraint unless
// it is just "key" or "fkey"
func attachPgField(err error) error {
	pgErr, ok := PgError(err)
	if !ok {
		return err
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(err, col)
	}
	c := strings.TrimSpace(pgErr.ConstraintName)
	if i := strings.LastIndex(c, "_"); i >= 0 {
		c = c[i+1:]
	}
	if c == "" || c == "key" || c == "fkey" || c == "pkey" {
		return err
	}
	return WithField(err, c)
}

// Retryable reports transient store failures: Postgres contention codes,
// ClickHouse overload codes and the driver texts that accompany them.
// Cancellation is never retryable
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := PgError(err); ok {
		return pgRetryable[pgErr.Code]
	}
	if ex, ok := CHException(err); ok {
		return chRetryable[ex.Code]
	}
	s := strings.ToLower(Root(err).Error())
	for _, frag := range []string{
		"commit unexpectedly resulted in rollback",
		"deadlock detected",
		"could not serialize access",
		"canceling statement due to lock timeout",
		"terminating connection due to administrator command",
	} {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
