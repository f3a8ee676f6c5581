// Package repository defines error values that are reused across multiple
// repositories.  These sentinel values allow higher layers such as the
// services to distinguish between different failure scenarios without
// inspecting raw driver errors.  MySQL constraint violations are detected
// here by error number so that nothing above this package knows about
// driver error formats.
package repository

import (
	"errors"
	"strings"
)

// ErrUsernameTaken is returned when an insert hits the unique index on
// username or email.  The service translates it into an HTTP 409.
var ErrUsernameTaken = errors.New("username or email already exists")

// ErrUserNotFound is returned when an update targets a user id that does
// not exist.  The service translates it into an HTTP 404.
var ErrUserNotFound = errors.New("user not found")

// ErrCoefficientNotFound is returned when a coefficient update targets an
// id that does not exist.
var ErrCoefficientNotFound = errors.New("coefficient not found")

// ErrUnknownAction is returned when inserting a record fails the foreign
// key on action_id.  The service treats it as a validation failure.
var ErrUnknownAction = errors.New("unknown action")

// isDuplicateKey reports whether err is a MySQL 1062 duplicate entry error.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isForeignKeyViolation reports whether err is a MySQL 1452 error: a row
// insert that references a missing parent row.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
