package oauth

import "errors"

// Sentinel errors returned by providers and the registry. Callers match with
// [errors.Is].
var (
	// ErrUnknownProvider is returned when a login names a provider that is
	// not registered (unrecognized, or missing credentials in config).
	ErrUnknownProvider = errors.New("unknown oauth provider")

	// ErrExchangeFailed is returned when the code exchange or the profile
	// fetch fails for any reason: network error, timeout, provider-side
	// rejection, or a malformed/incomplete identity payload.
	ErrExchangeFailed = errors.New("oauth exchange failed")

	// ErrRevocationFailed is returned when the provider refuses or fails
	// to revoke its grant. Local revocation proceeds regardless; this
	// error is only logged.
	ErrRevocationFailed = errors.New("oauth grant revocation failed")
)
