// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, bearer-token parsing, UUID generation,
// and other common operations.
package utils

import (
	"context"

	"github.com/icproject/catalog-auth/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key used to store the authenticated user in the context.
// The auth middleware resolves the bearer token to a full user record and
// stores it here; handlers retrieve it with GetUserFromContext. The current
// user is always carried explicitly through the request context, never
// through package-level state.
var UserCtxKey = contextKey("authUser")

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
//
// Returns the user and an ok flag:
//   - ok == true  — a user was attached by the auth middleware
//   - ok == false — the request is anonymous
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// TokenCtxKey is the key used to store the verified access token alongside
// the user. Logout needs the parsed token back to revoke it by id.
var TokenCtxKey = contextKey("authToken")

// WithToken returns a copy of ctx carrying the verified access token.
func WithToken(ctx context.Context, token models.Token) context.Context {
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetTokenFromContext retrieves the verified access token from the context.
func GetTokenFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(TokenCtxKey).(models.Token)
	return token, ok
}
