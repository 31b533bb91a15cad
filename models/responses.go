package models

// TokenPairResponse is the JSON body returned by login, registration, and
// OAuth login. Refresh returns the same shape with RefreshToken left empty
// (refresh tokens are not rotated).
type TokenPairResponse struct {
	// AccessToken is the short-lived token presented on every protected
	// request via the Authorization header.
	AccessToken string `json:"access_token"`

	// RefreshToken is the long-lived token accepted only by the refresh
	// endpoint.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`
}

// ErrorResponse is the uniform JSON error body. The message is deliberately
// generic for credential and token failures so that callers cannot
// distinguish which sub-condition occurred.
type ErrorResponse struct {
	Error string `json:"error"`
}
