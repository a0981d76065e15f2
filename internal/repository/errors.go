package repository

import (
	"errors"
	"strings"
)

// Sentinel errors shared by all repositories
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrInvalidInput   = errors.New("invalid input")
)

// isDuplicateKeyError reports whether err is a unique-constraint violation.
// Matched textually because the postgres driver (SQLSTATE 23505) and the
// SQLite driver used in tests report the violation differently.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "23505")
}
