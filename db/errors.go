// ABOUTME: Store-level sentinel errors and SQLite constraint translation
// ABOUTME: Unique-constraint violations surface as ErrConflict
package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when an update or delete matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert or update violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// wrap annotates err with op, tagging uniqueness violations with ErrConflict.
func wrap(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to %s: %w: %v", op, ErrConflict, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func requireAffected(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
