package models

import "time"

// Provider identifies the external OAuth provider an account is linked to.
// An empty value means the account is local-only.
type Provider string

const (
	// ProviderNone marks an account created through local registration
	// that has never been linked to an external provider.
	ProviderNone Provider = ""

	// ProviderGoogle marks an account linked to a Google identity.
	ProviderGoogle Provider = "google"

	// ProviderFacebook marks an account linked to a Facebook identity.
	ProviderFacebook Provider = "facebook"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Assigned by the database on creation and immutable afterwards.
	UserID int64 `json:"-"`

	// Username is the unique login identifier of the user. For accounts
	// created through an OAuth provider it is refreshed from the provider
	// profile on every login.
	Username string `json:"username"`

	// Email is the unique address used as the lookup key by identity
	// reconciliation.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Empty for accounts created through an OAuth provider; local login
	// against such accounts always fails.
	PasswordHash string `json:"-"`

	// Picture is an optional profile picture URL.
	Picture string `json:"picture,omitempty"`

	// Provider names the OAuth provider this account was last linked to,
	// or ProviderNone for local-only accounts.
	Provider Provider `json:"provider,omitempty"`

	// ProviderUserID is the provider-assigned account identifier.
	ProviderUserID string `json:"-"`

	// ProviderToken is the opaque provider-issued token kept so the
	// provider grant can be revoked on logout. Never exposed via JSON.
	ProviderToken string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasProvider reports whether the account is linked to an external OAuth
// provider and therefore carries a revocable provider grant.
func (u User) HasProvider() bool {
	return u.Provider != ProviderNone
}

// Owns reports whether the user is the owner of the resource identified by
// ownerID. Every protected mutation must apply this check before proceeding.
func (u User) Owns(ownerID int64) bool {
	return u.UserID == ownerID
}
