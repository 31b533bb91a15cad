package service

import (
	"context"
	"fmt"

	"github.com/icproject/catalog-auth/internal/crypto"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/internal/store"
	"github.com/icproject/catalog-auth/models"
)

// authService is the concrete implementation of AuthService.
// It composes the user repository, the token service, the provider registry,
// and identity reconciliation into the session gateway.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokens issues, verifies, and revokes session tokens.
	tokens TokenService

	// providers resolves provider names for OAuth login and grant revocation.
	providers ProviderRegistry

	// reconciler folds provider identity claims into local accounts.
	reconciler ReconcileService

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs the session gateway.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, tokens TokenService, providers ProviderRegistry, reconciler ReconcileService, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokens:         tokens,
		providers:      providers,
		reconciler:     reconciler,
		logger:         logger,
	}
}

// Register creates a local account and opens a session for it.
//
// The password is bcrypt-hashed before it reaches persistence; the plaintext
// never leaves this method.
//
// Returns the new session or:
//   - ErrInvalidDataProvided if username, email, or password is empty, or the
//     password exceeds the bcrypt length limit.
//   - A wrapped storage error if the repository call fails (e.g. username or
//     email already taken — see store.ErrLoginAlreadyExists and
//     store.ErrEmailAlreadyExists).
func (a *authService) Register(ctx context.Context, user models.User, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Email == "" || password == "" {
		log.Error().Str("username", user.Username).Msg("invalid registration data provided")
		return models.Session{}, ErrInvalidDataProvided
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user.PasswordHash = hash
	user.Provider = models.ProviderNone

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.Session{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.openSession(ctx, registeredUser)
}

// Login authenticates an existing local account.
//
// Every failure mode after input validation collapses into
// ErrInvalidCredentials: unknown username, wrong password, and accounts that
// have no local password at all. The response must not reveal which.
func (a *authService) Login(ctx context.Context, username, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.Session{}, ErrInvalidCredentials
	}

	if !crypto.VerifyPassword(password, foundUser.PasswordHash) {
		log.Warn().Int64("id", foundUser.UserID).Str("username", username).Msg("wrong password")
		return models.Session{}, ErrInvalidCredentials
	}

	return a.openSession(ctx, foundUser)
}

// LoginOAuth runs the provider code exchange, reconciles the returned
// identity into the account store, and opens a session for the result.
//
// Returns the session or:
//   - oauth.ErrUnknownProvider if the provider is not configured.
//   - oauth.ErrExchangeFailed if the code exchange or profile fetch fails.
//   - ErrDuplicateIdentity if reconciliation collides with another account.
func (a *authService) LoginOAuth(ctx context.Context, provider models.Provider, code string) (models.Session, error) {
	log := logger.FromContext(ctx)

	oauthProvider, err := a.providers.Get(provider)
	if err != nil {
		return models.Session{}, err
	}

	claim, err := oauthProvider.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Str("provider", string(provider)).Msg("provider code exchange failed")
		return models.Session{}, err
	}

	user, err := a.reconciler.Reconcile(ctx, claim)
	if err != nil {
		log.Err(err).Str("provider", string(provider)).Msg("identity reconciliation failed")
		return models.Session{}, err
	}

	return a.openSession(ctx, user)
}

// Refresh verifies a refresh token and issues a new access token for its
// subject. The refresh token is not rotated.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.Token, error) {
	log := logger.FromContext(ctx)

	parsed, err := a.tokens.Verify(ctx, refreshToken, models.PurposeRefresh)
	if err != nil {
		log.Warn().Err(err).Msg("refresh token rejected")
		return models.Token{}, err
	}

	accessToken, err := a.tokens.Issue(ctx, parsed.UserID, models.PurposeAccess)
	if err != nil {
		log.Err(err).Int64("id", parsed.UserID).Msg("access token issuance failed")
		return models.Token{}, fmt.Errorf("access token issuance failed: %w", err)
	}

	return accessToken, nil
}

// Logout tears the session down.
//
// The access token is always revoked. If the client presented its refresh
// token, that token is revoked too when it verifies and belongs to the same
// user; otherwise every outstanding token of the user is revoked, since an
// unrevoked refresh token would silently resurrect the session. Provider
// grant revocation is best-effort and never fails the logout.
func (a *authService) Logout(ctx context.Context, user models.User, accessToken models.Token, refreshToken string) error {
	log := logger.FromContext(ctx)

	if err := a.tokens.Revoke(ctx, accessToken); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("access token revocation failed")
		return fmt.Errorf("access token revocation failed: %w", err)
	}

	if err := a.revokeRefresh(ctx, user, refreshToken); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("refresh token revocation failed")
		return fmt.Errorf("refresh token revocation failed: %w", err)
	}

	a.revokeProviderGrant(ctx, user)

	return nil
}

// revokeRefresh revokes the presented refresh token, or falls back to a
// user-wide revocation when no usable refresh token was presented.
func (a *authService) revokeRefresh(ctx context.Context, user models.User, refreshToken string) error {
	if refreshToken != "" {
		parsed, err := a.tokens.Verify(ctx, refreshToken, models.PurposeRefresh)
		if err == nil && user.Owns(parsed.UserID) {
			return a.tokens.Revoke(ctx, parsed)
		}
	}

	return a.tokens.RevokeAllForUser(ctx, user.UserID)
}

// revokeProviderGrant asks the provider to drop its grant for the user.
// Failures are logged and swallowed: the local session is already dead, and
// the provider grant expires on its own.
func (a *authService) revokeProviderGrant(ctx context.Context, user models.User) {
	if !user.HasProvider() || user.ProviderToken == "" {
		return
	}

	log := logger.FromContext(ctx)

	oauthProvider, err := a.providers.Get(user.Provider)
	if err != nil {
		log.Warn().Err(err).Str("provider", string(user.Provider)).Msg("provider grant revocation skipped")
		return
	}

	if err := oauthProvider.Revoke(ctx, user.ProviderToken, user.ProviderUserID); err != nil {
		log.Warn().Err(err).Int64("id", user.UserID).Str("provider", string(user.Provider)).Msg("provider grant revocation failed")
	}
}

// Authenticate resolves a raw access token to its account.
//
// Returns the account and the parsed token, or a token verification error,
// or ErrInvalidCredentials when the token's subject no longer exists.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	parsed, err := a.tokens.Verify(ctx, accessToken, models.PurposeAccess)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, parsed.UserID)
	if err != nil {
		log.Warn().Err(err).Int64("id", parsed.UserID).Msg("token subject not found")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	return user, parsed, nil
}

// openSession issues the access/refresh pair for an authenticated user.
func (a *authService) openSession(ctx context.Context, user models.User) (models.Session, error) {
	log := logger.FromContext(ctx)

	accessToken, err := a.tokens.Issue(ctx, user.UserID, models.PurposeAccess)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("access token issuance failed")
		return models.Session{}, fmt.Errorf("access token issuance failed: %w", err)
	}

	refreshToken, err := a.tokens.Issue(ctx, user.UserID, models.PurposeRefresh)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("refresh token issuance failed")
		return models.Session{}, fmt.Errorf("refresh token issuance failed: %w", err)
	}

	return models.Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
