// internal/repository/errors.go
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

// Sentinel errors returned by the store. Match with errors.Is.
var (
	// ErrNotFound is returned when an update or delete matched no row.
	ErrNotFound = errors.New("customer not found")

	// ErrDuplicate is returned when an insert hits an existing primary key.
	ErrDuplicate = errors.New("customer already exists")

	// ErrIntegrityViolation is returned when a referential or restrict
	// constraint refuses the statement.
	ErrIntegrityViolation = errors.New("integrity constraint violation")
)

// classifyError maps a lib/pq error onto the sentinels above. Anything it
// does not recognise is wrapped as an unexpected DB error.
func classifyError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Message)
		case pgerrcode.ForeignKeyViolation,
			pgerrcode.RestrictViolation,
			pgerrcode.IntegrityConstraintViolation:
			return fmt.Errorf("%w: %s", ErrIntegrityViolation, pqErr.Message)
		}
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}
