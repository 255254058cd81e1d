package api

import "errors"

// Failure taxonomy. Every gateway call resolves to a parsed payload or to
// exactly one of these, wrapped with the HTTP detail. None are fatal: the
// operator retries by repeating the action.
var (
	// ErrInvalidCredentials means the login was rejected.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrLoadFailed means a listing fetch (duplicates or resolved) failed.
	ErrLoadFailed = errors.New("failed to load data")

	// ErrUpdateFailed means a single-record save failed.
	ErrUpdateFailed = errors.New("failed to update customer")

	// ErrMergeFailed means the merge operation failed.
	ErrMergeFailed = errors.New("merge failed")
)
