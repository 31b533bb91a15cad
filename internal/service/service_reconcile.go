package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/internal/store"
	"github.com/icproject/catalog-auth/models"
)

// reconcileService folds provider identity claims into the local account
// store. The email is the identity key: a claim for a known email overwrites
// that account's provider profile, a claim for an unknown email creates a
// fresh account with no local password.
type reconcileService struct {
	userRepository store.UserRepository

	logger *logger.Logger
}

func NewReconcileService(userRepository store.UserRepository, logger *logger.Logger) ReconcileService {
	return &reconcileService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// Reconcile maps a provider claim to a local account, creating or
// overwriting as needed. The provider profile always wins: whatever the
// provider reports on this login replaces what an earlier login stored.
//
// Two concurrent first logins for the same email race on the unique email
// constraint; the loser retries as an overwrite of the winner's row.
//
// Returns the reconciled account or:
//   - The claim validation error if required fields are missing.
//   - ErrDuplicateIdentity if the provider-reported username is taken by a
//     different account.
//   - A wrapped storage error for any other repository failure.
func (r *reconcileService) Reconcile(ctx context.Context, claim models.Claim) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := claim.Validate(); err != nil {
		log.Error().Err(err).Str("provider", string(claim.Provider)).Msg("invalid identity claim")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user := userFromClaim(claim)

	_, err := r.userRepository.FindUserByEmail(ctx, claim.Email)
	if err == nil {
		return r.overwrite(ctx, user)
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", claim.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	createdUser, err := r.userRepository.CreateUser(ctx, user)
	switch {
	case err == nil:
		return createdUser, nil
	case errors.Is(err, store.ErrEmailAlreadyExists):
		// Lost the race against a concurrent first login.
		return r.overwrite(ctx, user)
	case errors.Is(err, store.ErrLoginAlreadyExists):
		log.Warn().Str("username", user.Username).Msg("provider username taken by another account")
		return models.User{}, fmt.Errorf("%w: username %q", ErrDuplicateIdentity, user.Username)
	default:
		log.Err(err).Str("email", claim.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}
}

func (r *reconcileService) overwrite(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	updatedUser, err := r.userRepository.UpdateOAuthProfile(ctx, user)
	switch {
	case err == nil:
		return updatedUser, nil
	case errors.Is(err, store.ErrLoginAlreadyExists):
		log.Warn().Str("username", user.Username).Msg("provider username taken by another account")
		return models.User{}, fmt.Errorf("%w: username %q", ErrDuplicateIdentity, user.Username)
	default:
		log.Err(err).Str("email", user.Email).Msg("provider profile overwrite failed")
		return models.User{}, fmt.Errorf("provider profile overwrite failed: %w", err)
	}
}

// userFromClaim builds the account image a claim dictates. Accounts created
// this way carry no password hash, so local login against them always fails.
func userFromClaim(claim models.Claim) models.User {
	username := claim.DisplayName
	if username == "" {
		username = claim.Email
	}

	return models.User{
		Username:       username,
		Email:          claim.Email,
		Picture:        claim.Picture,
		Provider:       claim.Provider,
		ProviderUserID: claim.ProviderUserID,
		ProviderToken:  claim.ProviderToken,
	}
}
