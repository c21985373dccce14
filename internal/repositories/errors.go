package repositories

import (
	"errors"

	"family-backend/internal/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// translateErr maps driver errors onto the application taxonomy. Unique and
// check violations come back as conflict/validation; a missing row is not
// found; anything else is treated as store unavailability.
func translateErr(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("%s", notFoundMsg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.Conflict("duplicate value for %s", pgErr.ConstraintName)
		case "23514": // check_violation
			return apperrors.Validation("constraint %s violated", pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return apperrors.Validation("referenced record does not exist (%s)", pgErr.ConstraintName)
		}
	}

	return apperrors.Unavailable(err)
}
