package utils

import "github.com/google/uuid"

// NewTokenID returns a fresh identifier for the "jti" claim of an issued
// token. Version 7 UUIDs are time-ordered, which keeps revocation-store keys
// roughly sorted by issuance time; plain v4 is used as a fallback.
func NewTokenID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
