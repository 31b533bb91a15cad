package store

import (
	"context"
	"time"

	"github.com/icproject/catalog-auth/models"
)

// UserRepository is the data-access contract for user accounts.
//
// The backing table enforces uniqueness on both username and email; violation
// of those constraints surfaces as [ErrLoginAlreadyExists] and
// [ErrEmailAlreadyExists] respectively.
type UserRepository interface {
	// CreateUser persists a new account and returns it with the
	// server-assigned UserID and CreatedAt populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername looks an account up by its unique username.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByEmail looks an account up by its unique email. This is the
	// identity-reconciliation lookup key.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks an account up by its internal identifier.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateOAuthProfile overwrites the mutable provider-sourced profile
	// fields (username, picture, provider, provider user id, provider
	// token) of the account with the given email. Last login wins.
	UpdateOAuthProfile(ctx context.Context, user models.User) (models.User, error)
}

// RevocationStore records tokens and users whose otherwise-valid tokens must
// be rejected before natural expiry. It is consulted synchronously on every
// token verification.
type RevocationStore interface {
	// RevokeToken marks a single token id ("jti" claim) as revoked for
	// ttl, which should be the token's remaining lifetime. Entries expire
	// together with the token they block.
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsTokenRevoked reports whether the token id has been revoked.
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)

	// RevokeAllForUser marks every token of the user issued at or before
	// cutoff as revoked. The mark is kept for ttl, which should cover the
	// longest token lifetime in flight.
	RevokeAllForUser(ctx context.Context, userID int64, cutoff time.Time, ttl time.Duration) error

	// UserCutoff returns the user's revoke-all mark. The zero time means
	// no user-level revocation is in effect.
	UserCutoff(ctx context.Context, userID int64) (time.Time, error)
}
