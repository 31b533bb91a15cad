// Package crypto implements the credential-handling primitives of the
// service: salted, slow password hashing and constant-time verification.
//
// Hash persistence is the caller's responsibility; nothing in this package
// has side effects beyond pure computation.
package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied to every new password hash.
// Verification reads the cost out of the stored hash, so raising this value
// only affects hashes created afterwards.
const bcryptCost = 12

// Sentinel errors returned by HashPassword. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyPassword is returned when an empty plaintext is submitted
	// for hashing. Accounts without a usable password (OAuth-created ones)
	// store an empty hash instead.
	ErrEmptyPassword = errors.New("empty password")

	// ErrPasswordTooLong is returned when the plaintext exceeds bcrypt's
	// 72-byte input limit. Silently truncating would make distinct
	// passwords verify as equal.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// HashPassword derives a salted bcrypt hash from the given plaintext.
//
// The salt is generated per call, so hashing the same plaintext twice yields
// different but mutually verifiable hashes.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
//
// A missing or malformed hash is treated as a verification failure, never an
// error: an account created through an OAuth provider stores an empty hash,
// and local login against it must simply fail.
func VerifyPassword(plaintext, hash string) bool {
	if plaintext == "" || hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
