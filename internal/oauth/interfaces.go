// Package oauth implements the external identity-provider integrations:
// exchanging a one-time code or short-lived token for a normalized identity
// claim, and revoking the provider-side grant on logout.
//
// Every outbound call is bounded by the configured request timeout; a
// provider that does not answer in time fails the operation cleanly with no
// partial side effects.
package oauth

import (
	"context"

	"github.com/icproject/catalog-auth/models"
)

// Provider is the contract every supported identity provider implements.
type Provider interface {
	// Name returns the provider identifier stored on user records.
	Name() models.Provider

	// Exchange trades the one-time code (or short-lived token) obtained by
	// the client for a validated identity claim. The returned claim always
	// passes [models.Claim.Validate].
	Exchange(ctx context.Context, code string) (models.Claim, error)

	// Revoke asks the provider to revoke the grant identified by
	// providerToken (and, where the provider requires it, providerUserID).
	Revoke(ctx context.Context, providerToken, providerUserID string) error
}
