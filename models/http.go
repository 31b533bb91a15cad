package models

// RegisterRequest is the JSON body accepted by the local registration
// endpoint.
type RegisterRequest struct {
	// Username is the desired unique login name.
	Username string `json:"username"`

	// Email is the unique account address.
	Email string `json:"email"`

	// Password is the plain-text password. It is bcrypt-hashed before
	// anything is persisted and never logged.
	Password string `json:"password"`
}

// LoginRequest is the JSON body accepted by the local login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OAuthLoginRequest is the JSON body accepted by the OAuth login endpoint.
// Code carries the one-time authorization code (Google) or short-lived token
// (Facebook) obtained by the client out-of-band.
type OAuthLoginRequest struct {
	Code string `json:"code"`
}

// RefreshRequest is the JSON body accepted by the token refresh endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest is the JSON body accepted by the logout endpoint. The access
// token is taken from the Authorization header; the refresh token, if the
// client still holds one, is sent in the body so it can be revoked too.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}
