package token

import "errors"

// Discriminated verification results. Callers match with [errors.Is] and must
// be able to tell these apart: an expired token prompts a refresh, a revoked
// or malformed one ends the session.
var (
	// ErrTokenExpired is returned when the token's signature and shape are
	// valid but its expiry has passed. No clock-skew leeway is applied.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenMalformed is returned for any structurally or
	// cryptographically invalid token: bad signature, wrong issuer,
	// missing subject, or garbage input.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenRevoked is returned when an otherwise-valid token has been
	// revoked, either individually or by a user-level revoke-all mark.
	ErrTokenRevoked = errors.New("token is revoked")

	// ErrPurposeMismatch is returned when a token is presented for a flow
	// it was not issued for (e.g. a refresh token on a protected request).
	ErrPurposeMismatch = errors.New("token purpose mismatch")

	// ErrTokenCreationFailed wraps signing failures during issuance.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
