package service

import (
	"context"

	"github.com/icproject/catalog-auth/internal/oauth"
	"github.com/icproject/catalog-auth/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn         func(ctx context.Context, user models.User) (models.User, error)
	findByUsernameFn func(ctx context.Context, username string) (models.User, error)
	findByEmailFn    func(ctx context.Context, email string) (models.User, error)
	findByIDFn       func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn  func(ctx context.Context, user models.User) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) UpdateOAuthProfile(ctx context.Context, user models.User) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, user)
	}
	return user, nil
}

// ─────────────────────────────────────────────
// Mock: TokenService
// ─────────────────────────────────────────────

type mockTokenService struct {
	issueFn            func(ctx context.Context, userID int64, purpose models.TokenPurpose) (models.Token, error)
	verifyFn           func(ctx context.Context, tokenString string, purpose models.TokenPurpose) (models.Token, error)
	revokeFn           func(ctx context.Context, token models.Token) error
	revokeAllForUserFn func(ctx context.Context, userID int64) error
}

func (m *mockTokenService) Issue(ctx context.Context, userID int64, purpose models.TokenPurpose) (models.Token, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, userID, purpose)
	}
	return models.Token{UserID: userID, SignedString: "signed-" + string(purpose)}, nil
}

func (m *mockTokenService) Verify(ctx context.Context, tokenString string, purpose models.TokenPurpose) (models.Token, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, tokenString, purpose)
	}
	return models.Token{SignedString: tokenString}, nil
}

func (m *mockTokenService) Revoke(ctx context.Context, token models.Token) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, token)
	}
	return nil
}

func (m *mockTokenService) RevokeAllForUser(ctx context.Context, userID int64) error {
	if m.revokeAllForUserFn != nil {
		return m.revokeAllForUserFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: ProviderRegistry / oauth.Provider
// ─────────────────────────────────────────────

type mockProviderRegistry struct {
	getFn func(name models.Provider) (oauth.Provider, error)
}

func (m *mockProviderRegistry) Get(name models.Provider) (oauth.Provider, error) {
	if m.getFn != nil {
		return m.getFn(name)
	}
	return nil, oauth.ErrUnknownProvider
}

type mockProvider struct {
	name       models.Provider
	exchangeFn func(ctx context.Context, code string) (models.Claim, error)
	revokeFn   func(ctx context.Context, providerToken, providerUserID string) error
}

func (m *mockProvider) Name() models.Provider {
	return m.name
}

func (m *mockProvider) Exchange(ctx context.Context, code string) (models.Claim, error) {
	if m.exchangeFn != nil {
		return m.exchangeFn(ctx, code)
	}
	return models.Claim{}, nil
}

func (m *mockProvider) Revoke(ctx context.Context, providerToken, providerUserID string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, providerToken, providerUserID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: ReconcileService
// ─────────────────────────────────────────────

type mockReconcileService struct {
	reconcileFn func(ctx context.Context, claim models.Claim) (models.User, error)
}

func (m *mockReconcileService) Reconcile(ctx context.Context, claim models.Claim) (models.User, error) {
	if m.reconcileFn != nil {
		return m.reconcileFn(ctx, claim)
	}
	return models.User{}, nil
}

