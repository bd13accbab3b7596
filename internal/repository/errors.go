package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Storage-level sentinel errors. Services translate these into user-facing
// errors; raw database errors never reach a client.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrDuplicateEntry = errors.New("journal entry already exists for this date")
)

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
