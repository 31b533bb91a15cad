package service

import (
	"context"

	"github.com/icproject/catalog-auth/internal/oauth"
	"github.com/icproject/catalog-auth/models"
)

// AuthService is the session gateway. It owns the complete lifecycle of a
// session: establishing one through any supported credential kind, keeping it
// alive, resolving it back to a user, and tearing it down.
type AuthService interface {
	// Register creates a local account from username, email and password
	// and opens a session for it.
	Register(ctx context.Context, user models.User, password string) (models.Session, error)

	// Login verifies a local username/password pair and opens a session.
	Login(ctx context.Context, username, password string) (models.Session, error)

	// LoginOAuth exchanges a provider authorization code, reconciles the
	// resulting identity into a local account, and opens a session.
	LoginOAuth(ctx context.Context, provider models.Provider, code string) (models.Session, error)

	// Refresh trades a valid refresh token for a new access token. The
	// refresh token itself stays valid until expiry or revocation.
	Refresh(ctx context.Context, refreshToken string) (models.Token, error)

	// Logout revokes the session's tokens and, for provider-linked
	// accounts, asks the provider to revoke its grant.
	Logout(ctx context.Context, user models.User, accessToken models.Token, refreshToken string) error

	// Authenticate resolves a raw access token to the account it belongs
	// to. Used by the authentication middleware on every protected request.
	Authenticate(ctx context.Context, accessToken string) (models.User, models.Token, error)
}

// ReconcileService folds a provider identity claim into the local account
// store, creating or overwriting as needed.
type ReconcileService interface {
	Reconcile(ctx context.Context, claim models.Claim) (models.User, error)
}

// TokenService is the token-lifecycle contract the gateway depends on.
// Satisfied by token.Service.
type TokenService interface {
	Issue(ctx context.Context, userID int64, purpose models.TokenPurpose) (models.Token, error)
	Verify(ctx context.Context, tokenString string, purpose models.TokenPurpose) (models.Token, error)
	Revoke(ctx context.Context, token models.Token) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// ProviderRegistry resolves a provider name to a configured OAuth provider.
// Satisfied by oauth.Providers.
type ProviderRegistry interface {
	Get(name models.Provider) (oauth.Provider, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
