// Package pgerr maps postgres driver errors onto the application error
// taxonomy so repositories return kinded errors instead of raw pq codes.
package pgerr

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/oab26/medusa-colabship/internal/apperror"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
)

// Map classifies err under the given operation label. sql.ErrNoRows becomes
// NotFound; constraint violations become Duplicate/Reference/Validation;
// anything pointing at a dead connection becomes Unavailable.
func Map(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.Wrap(apperror.NotFound, op, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			return apperror.Wrap(apperror.Duplicate, op, err)
		case codeForeignKeyViolation:
			return apperror.Wrap(apperror.Reference, op, err)
		case codeNotNullViolation, codeCheckViolation:
			return apperror.Wrap(apperror.Validation, op, err)
		}
	}

	// Dead connections, timeouts, and anything else unclassified: the
	// store could not be used, which is all the caller can act on.
	return apperror.Wrap(apperror.Unavailable, op, err)
}
