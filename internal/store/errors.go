package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to create a user
	// fails because the username is already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrEmailAlreadyExists is returned when an attempt to create a user
	// fails because the email is already registered. Identity
	// reconciliation relies on this to resolve concurrent first-time OAuth
	// logins by retrying as an update.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrNoUserWasFound is returned when a query expected to match exactly
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. no columns to update).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan user row")
)
