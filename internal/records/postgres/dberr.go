package postgres

import (
	"errors"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapDBError folds driver errors into the application error vocabulary.
// Postgres errors (not-null, unique, type mismatch and friends) become
// ConstraintViolation with the backend message passed through verbatim:
// both operator roles are trusted, so leaking detail is acceptable and
// useful. Everything else is the database being unreachable.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return internal.ErrConstraintViolation.WithMessage(pgErr.Message).WithCause(err)
	}

	return internal.ErrStorageUnavailable.WithCause(err)
}
