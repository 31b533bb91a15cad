package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers every local-login failure: unknown
	// username, wrong password, and password login against an account that
	// only ever signed in through a provider. Callers must not distinguish
	// between these cases.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrDuplicateIdentity is returned when a provider identity cannot be
	// reconciled because its profile collides with a different account.
	ErrDuplicateIdentity = errors.New("identity conflicts with an existing account")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
