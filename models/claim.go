package models

import "errors"

// Sentinel errors returned by [Claim.Validate] when a provider response is
// missing data the reconciler cannot work without.
var (
	ErrClaimMissingProvider = errors.New("claim has no provider")
	ErrClaimMissingEmail    = errors.New("claim has no email")
	ErrClaimMissingUserID   = errors.New("claim has no provider user id")
)

// Claim is the normalized identity data returned by an OAuth provider after a
// successful code exchange. It is validated at the transport boundary before
// it reaches identity reconciliation, so downstream code can rely on the
// required fields being present.
type Claim struct {
	// DisplayName is the provider-side profile name. Stored as the local
	// username on every OAuth login (last login wins).
	DisplayName string `json:"name"`

	// Email is the verified address reported by the provider. It is the
	// reconciliation lookup key and is required.
	Email string `json:"email"`

	// Picture is the profile picture URL, if the provider supplied one.
	Picture string `json:"picture,omitempty"`

	// Provider names the provider that produced this claim.
	Provider Provider `json:"provider"`

	// ProviderUserID is the provider-assigned account identifier.
	ProviderUserID string `json:"provider_user_id"`

	// ProviderToken is the provider-issued access token, kept on the user
	// record so the grant can be revoked on logout.
	ProviderToken string `json:"-"`
}

// Validate checks that the claim carries everything reconciliation needs.
// Picture and DisplayName are optional; provider, email, and the provider
// user id are not.
func (c Claim) Validate() error {
	if c.Provider == ProviderNone {
		return ErrClaimMissingProvider
	}
	if c.Email == "" {
		return ErrClaimMissingEmail
	}
	if c.ProviderUserID == "" {
		return ErrClaimMissingUserID
	}
	return nil
}
