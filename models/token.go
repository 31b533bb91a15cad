package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose tags a token with the flow it is valid for. Access tokens are
// short-lived and presented on every protected request; refresh tokens are
// long-lived and accepted only by the refresh endpoint.
type TokenPurpose string

const (
	// PurposeAccess marks a short-lived per-request token.
	PurposeAccess TokenPurpose = "access"

	// PurposeRefresh marks a long-lived token used only to mint new
	// access tokens.
	PurposeRefresh TokenPurpose = "refresh"
)

// TokenClaims is the JWT claim set carried by every issued token.
//
// It extends the standard RFC 7519 registered claims (sub, exp, iat, iss, jti)
// with a private "prp" claim holding the token purpose. The "jti" claim is a
// per-token UUID used as the revocation key.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Purpose distinguishes access tokens from refresh tokens.
	// A token presented for the wrong purpose is never valid.
	Purpose TokenPurpose `json:"prp"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers or a
// response body.
//
// UserID is a cached, parsed copy of the "sub" (subject) claim converted to
// int64, populated during issuance or after successful verification.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the compact
	// string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// TokenClaims provides access to the claim set (sub, exp, iat, iss,
	// jti, prp) embedded in the token.
	TokenClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	// Excluded from JSON serialization; it is an internal server-side cache.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" (subject)
// claim, parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
