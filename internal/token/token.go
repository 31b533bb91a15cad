// Package token implements the stateless token service: issuance and
// verification of HMAC-signed, time-limited tokens carrying a user identity
// and a purpose tag.
//
// Tokens are self-verifying, so the signature check never requires a
// database round-trip; only the revocation lookup touches shared state.
package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/internal/store"
	"github.com/icproject/catalog-auth/internal/utils"
	"github.com/icproject/catalog-auth/models"
)

// Service issues and verifies signed tokens. All fields are read-only after
// construction, so a single instance is safe for concurrent use.
//
// The signing key is process-wide: rotating it invalidates every outstanding
// token. That is an explicit, accepted tradeoff of the single-key design.
type Service struct {
	// signKey is the HMAC-SHA256 secret used to sign and verify tokens.
	signKey string

	// issuer is the "iss" claim embedded in every issued token. Tokens
	// whose issuer does not match are rejected during verification.
	issuer string

	// accessTTL and refreshTTL are the configured lifetimes per purpose.
	accessTTL  time.Duration
	refreshTTL time.Duration

	// revocations is consulted synchronously on every verification.
	revocations store.RevocationStore

	logger *logger.Logger
}

// NewService constructs a token [Service] from the application config and the
// revocation store.
func NewService(cfg config.App, revocations store.RevocationStore, logger *logger.Logger) *Service {
	return &Service{
		signKey:     cfg.TokenSignKey,
		issuer:      cfg.TokenIssuer,
		accessTTL:   cfg.AccessTokenDuration,
		refreshTTL:  cfg.RefreshTokenDuration,
		revocations: revocations,
		logger:      logger,
	}
}

// TTL returns the configured lifetime for the given purpose.
func (s *Service) TTL(purpose models.TokenPurpose) time.Duration {
	if purpose == models.PurposeRefresh {
		return s.refreshTTL
	}
	return s.accessTTL
}

// Issue creates a signed token for userID with the configured lifetime of the
// given purpose. See [Service.IssueWithTTL].
func (s *Service) Issue(ctx context.Context, userID int64, purpose models.TokenPurpose) (models.Token, error) {
	return s.IssueWithTTL(ctx, userID, purpose, s.TTL(purpose))
}

// IssueWithTTL creates an HMAC-SHA256 signed token embedding the user id
// (sub), the purpose (prp), a fresh token id (jti), and an absolute expiry of
// now + ttl. A zero ttl produces a token that is already expired at the next
// verification; issuance itself never fails because of it.
func (s *Service) IssueWithTTL(ctx context.Context, userID int64, purpose models.TokenPurpose, ttl time.Duration) (models.Token, error) {
	now := time.Now()
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        utils.NewTokenID(),
		},
		Purpose: purpose,
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := jwtToken.SignedString([]byte(s.signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.Token{
		Token:        jwtToken,
		TokenClaims:  claims,
		SignedString: signedString,
		UserID:       userID,
	}, nil
}

// Verify validates a raw token string and resolves it to its claims.
//
// Checks, in order: signature and structural integrity (including the issuer
// claim and signing method), expiry at the verifying instant, purpose match,
// and finally revocation — both the per-token id and the user-level
// revoke-all cutoff.
//
// Returns exactly one of [ErrTokenExpired], [ErrTokenMalformed],
// [ErrPurposeMismatch], [ErrTokenRevoked], or the parsed token.
func (s *Service) Verify(ctx context.Context, tokenString string, expectedPurpose models.TokenPurpose) (models.Token, error) {
	parsed := &models.Token{}

	jwtToken, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(s.signKey), nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenExpired
		}
		return models.Token{}, ErrTokenMalformed
	}
	parsed.Token = jwtToken

	userID, err := parsed.GetUserID()
	if err != nil {
		return models.Token{}, ErrTokenMalformed
	}
	parsed.UserID = userID

	if parsed.Purpose != expectedPurpose {
		return models.Token{}, ErrPurposeMismatch
	}

	if err := s.checkRevocation(ctx, parsed); err != nil {
		return models.Token{}, err
	}

	parsed.SignedString = tokenString
	return *parsed, nil
}

// Revoke adds the token to the revocation set for the remainder of its
// lifetime. Revoking an already-expired token is a no-op.
func (s *Service) Revoke(ctx context.Context, token models.Token) error {
	if token.ID == "" {
		return ErrTokenMalformed
	}

	var ttl time.Duration
	if token.ExpiresAt != nil {
		ttl = time.Until(token.ExpiresAt.Time)
	}

	return s.revocations.RevokeToken(ctx, token.ID, ttl)
}

// RevokeAllForUser marks every token of the user issued at or before now as
// revoked. The mark is kept long enough to outlive the longest-lived token
// still in flight.
func (s *Service) RevokeAllForUser(ctx context.Context, userID int64) error {
	return s.revocations.RevokeAllForUser(ctx, userID, time.Now(), s.refreshTTL)
}

// checkRevocation consults the revocation store for both the per-token id and
// the user-level cutoff. Store failures surface as errors so that a broken
// revocation backend fails closed rather than accepting revoked tokens.
func (s *Service) checkRevocation(ctx context.Context, token *models.Token) error {
	revoked, err := s.revocations.IsTokenRevoked(ctx, token.ID)
	if err != nil {
		return fmt.Errorf("error consulting revocation store: %w", err)
	}
	if revoked {
		return ErrTokenRevoked
	}

	cutoff, err := s.revocations.UserCutoff(ctx, token.UserID)
	if err != nil {
		return fmt.Errorf("error consulting revocation store: %w", err)
	}
	if !cutoff.IsZero() && token.IssuedAt != nil && !token.IssuedAt.After(cutoff) {
		return ErrTokenRevoked
	}

	return nil
}
