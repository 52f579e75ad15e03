package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the stores react to
const (
	pgUniqueViolation      = "23505"
	pgNotNullViolation     = "23502"
	pgCheckViolation       = "23514"
	pgInvalidText          = "22P02"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgReadOnlyTx           = "25006"
	pgCannotConnectNow     = "57P03"
	pgQueryCanceled        = "57014"
)

// PgError returns the postgres error at the root of err
func PgError(err error) (*pgconn.PgError, bool) {
	var pg *pgconn.PgError
	if stderrs.As(Root(err), &pg) {
		return pg, true
	}
	return nil, false
}

// IsSQLState reports whether err is a postgres error with the given SQLSTATE
func IsSQLState(err error, state string) bool {
	pg, ok := PgError(err)
	return ok && pg.Code == state
}

// IsLockNotAvailable reports a lock_timeout or NOWAIT miss
func IsLockNotAvailable(err error) bool { return IsSQLState(err, pgLockNotAvailable) }

// DBErrorCode classifies a postgres error, ok is false for anything else
func DBErrorCode(err error) (ErrorCode, bool) {
	pg, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pg.Code {
	case pgUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgNotNullViolation, pgCheckViolation:
		return ErrorCodeValidation, true
	case pgInvalidText:
		return ErrorCodeInvalidArgument, true
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable,
		pgReadOnlyTx, pgCannotConnectNow, pgQueryCanceled:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a store error with msg and a code taken from the SQLSTATE
// errors already carrying one of our codes keep it, nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	if e, ok := As(err); ok {
		return Wrap(err, e.code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// IsRetryable reports contention a caller may retry
// local cancellation never counts
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pg, ok := PgError(err); ok {
		switch pg.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	for _, frag := range []string{
		"commit unexpectedly resulted in rollback",
		"deadlock detected",
		"could not serialize access",
		"canceling statement due to lock timeout",
	} {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
