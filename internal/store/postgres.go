package store

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// translatePGError converts integrity-constraint errors (SQLSTATE class 23,
// e.g. 23505 unique_violation, 23503 foreign_key_violation) into
// ErrConstraintViolated so callers never depend on driver types.
func translatePGError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %s", ErrConstraintViolated, pqErr.Constraint)
	}
	return err
}
