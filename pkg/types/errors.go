package types

import "errors"

// Storage boundary errors. Store-level SQLite failures never cross the
// boundary directly; they are converted to a Result carrying a generic
// message while the diagnostic detail goes to the audit log.
var (
	ErrNotConnected  = errors.New("database connection not established")
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("name already exists")
	ErrMissingParent = errors.New("parent id is required")
	ErrMissingTitle  = errors.New("title is required")
	ErrMissingAuthor = errors.New("author is required")
	ErrBadFormat     = errors.New("payload is not in the expected format")
)

// Result reports the outcome of a write operation across the storage
// boundary. Message is user-presentable; raw store error text never
// appears in it.
type Result struct {
	OK      bool
	Message string
}

// Ok builds a successful Result.
func Ok(message string) Result {
	return Result{OK: true, Message: message}
}

// Fail builds a failed Result.
func Fail(message string) Result {
	return Result{OK: false, Message: message}
}
