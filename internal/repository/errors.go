package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// storeErr folds pgx failures into the domain taxonomy. Missing rows
// become ErrNotFound, unique/exclusion violations become ErrConflict
// and anything else is treated as the store being unreachable, so the
// caller never assumes a clean no-overlap answer on infrastructure
// failure.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if isConflictPgErr(err) {
		return domain.ErrConflict
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func isConflictPgErr(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 23505 unique_violation, 23P01 exclusion_violation
	return pgErr.Code == "23505" || pgErr.Code == "23P01"
}
