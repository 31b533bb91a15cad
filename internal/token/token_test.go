package token

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/internal/store"
	"github.com/icproject/catalog-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := config.App{
		TokenSignKey:         "test-sign-key",
		TokenIssuer:          "catalog-auth-test",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
	}
	return NewService(cfg, store.NewMemoryRevocationStore(), logger.Nop())
}

func TestIssueAndVerify_Access(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, 42, models.PurposeAccess)
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)
	require.NotEmpty(t, issued.ID)

	verified, err := svc.Verify(ctx, issued.SignedString, models.PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), verified.UserID)
	assert.Equal(t, models.PurposeAccess, verified.Purpose)
}

func TestIssueAndVerify_Refresh(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, 7, models.PurposeRefresh)
	require.NoError(t, err)

	verified, err := svc.Verify(ctx, issued.SignedString, models.PurposeRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(7), verified.UserID)
}

func TestVerify_PurposeMismatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	refresh, err := svc.Issue(ctx, 42, models.PurposeRefresh)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, refresh.SignedString, models.PurposeAccess)
	assert.ErrorIs(t, err, ErrPurposeMismatch)

	access, err := svc.Issue(ctx, 42, models.PurposeAccess)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, access.SignedString, models.PurposeRefresh)
	assert.ErrorIs(t, err, ErrPurposeMismatch)
}

func TestVerify_ZeroTTLImmediatelyExpired(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.IssueWithTTL(ctx, 42, models.PurposeAccess, 0)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, issued.SignedString, models.PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.IssueWithTTL(ctx, 42, models.PurposeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, issued.SignedString, models.PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Garbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Verify(context.Background(), "not.a.token", models.PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_WrongSignKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	other := NewService(config.App{
		TokenSignKey:         "different-key",
		TokenIssuer:          "catalog-auth-test",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
	}, store.NewMemoryRevocationStore(), logger.Nop())

	issued, err := other.Issue(ctx, 42, models.PurposeAccess)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, issued.SignedString, models.PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_WrongIssuer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	other := NewService(config.App{
		TokenSignKey:         "test-sign-key",
		TokenIssuer:          "someone-else",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
	}, store.NewMemoryRevocationStore(), logger.Nop())

	issued, err := other.Issue(ctx, 42, models.PurposeAccess)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, issued.SignedString, models.PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_RevokedToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, 42, models.PurposeAccess)
	require.NoError(t, err)

	// valid before revocation
	_, err = svc.Verify(ctx, issued.SignedString, models.PurposeAccess)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, issued))

	_, err = svc.Verify(ctx, issued.SignedString, models.PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestVerify_RevokeAllForUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	access, err := svc.Issue(ctx, 42, models.PurposeAccess)
	require.NoError(t, err)
	refresh, err := svc.Issue(ctx, 42, models.PurposeRefresh)
	require.NoError(t, err)
	otherUser, err := svc.Issue(ctx, 43, models.PurposeAccess)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllForUser(ctx, 42))

	_, err = svc.Verify(ctx, access.SignedString, models.PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.Verify(ctx, refresh.SignedString, models.PurposeRefresh)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// other users are unaffected
	_, err = svc.Verify(ctx, otherUser.SignedString, models.PurposeAccess)
	assert.NoError(t, err)
}

func TestIssue_ClaimsShape(t *testing.T) {
	svc := newTestService(t)

	issued, err := svc.Issue(context.Background(), 42, models.PurposeRefresh)
	require.NoError(t, err)

	sub, err := issued.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "42", sub)
	assert.Equal(t, "catalog-auth-test", issued.Issuer)
	assert.Equal(t, models.PurposeRefresh, issued.Purpose)
	require.NotNil(t, issued.ExpiresAt)
	require.NotNil(t, issued.IssuedAt)
	assert.Equal(t, 24*time.Hour, issued.ExpiresAt.Sub(issued.IssuedAt.Time))
}

func TestRevoke_MissingTokenID(t *testing.T) {
	svc := newTestService(t)

	err := svc.Revoke(context.Background(), models.Token{})
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTTL(t *testing.T) {
	svc := newTestService(t)

	assert.Equal(t, 15*time.Minute, svc.TTL(models.PurposeAccess))
	assert.Equal(t, 24*time.Hour, svc.TTL(models.PurposeRefresh))
}

var _ jwt.Claims = models.TokenClaims{}
