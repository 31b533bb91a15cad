package store

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocationStore is an in-process implementation of [RevocationStore].
// It backs single-node deployments without redis and the test suite. State
// does not survive a restart, which is the documented tradeoff of running
// without an external revocation store.
type MemoryRevocationStore struct {
	mu sync.RWMutex

	// tokens maps jti → entry expiry.
	tokens map[string]time.Time

	// cutoffs maps user id → {cutoff, entry expiry}.
	cutoffs map[int64]userCutoffEntry
}

type userCutoffEntry struct {
	cutoff    time.Time
	expiresAt time.Time
}

// NewMemoryRevocationStore returns an empty in-process revocation store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		tokens:  make(map[string]time.Time),
		cutoffs: make(map[int64]userCutoffEntry),
	}
}

// RevokeToken implements [RevocationStore].
func (s *MemoryRevocationStore) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenID] = time.Now().Add(ttl)

	return nil
}

// IsTokenRevoked implements [RevocationStore]. Expired entries are pruned
// lazily on read.
func (s *MemoryRevocationStore) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.tokens[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		delete(s.tokens, tokenID)
		return false, nil
	}

	return true, nil
}

// RevokeAllForUser implements [RevocationStore].
func (s *MemoryRevocationStore) RevokeAllForUser(_ context.Context, userID int64, cutoff time.Time, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.cutoffs[userID]; ok && cutoff.Before(current.cutoff) {
		return nil
	}

	s.cutoffs[userID] = userCutoffEntry{
		cutoff:    cutoff,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// UserCutoff implements [RevocationStore].
func (s *MemoryRevocationStore) UserCutoff(_ context.Context, userID int64) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cutoffs[userID]
	if !ok {
		return time.Time{}, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.cutoffs, userID)
		return time.Time{}, nil
	}

	return entry.cutoff, nil
}

// Prune removes every entry whose expiry lies at or before now and reports
// how many were dropped. Reads already prune lazily; this keeps memory
// bounded for entries that are never read again.
func (s *MemoryRevocationStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for tokenID, expiresAt := range s.tokens {
		if now.After(expiresAt) {
			delete(s.tokens, tokenID)
			pruned++
		}
	}
	for userID, entry := range s.cutoffs {
		if now.After(entry.expiresAt) {
			delete(s.cutoffs, userID)
			pruned++
		}
	}

	return pruned
}
