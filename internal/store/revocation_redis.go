package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/logger"
)

// Key prefixes for revocation entries. Per-token entries hold a single jti;
// per-user entries hold the unix-nanosecond cutoff of a revoke-all mark.
const (
	revokedTokenKeyPrefix = "revoked:token:"
	revokedUserKeyPrefix  = "revoked:user:"
)

// redisRevocationStore is the Redis-backed implementation of
// [RevocationStore]. Entries carry a TTL matching the lifetime of the tokens
// they block, so the set cleans itself up as tokens expire naturally.
//
// Unlike an in-process session map, redis state survives server restarts, so
// a logout stays effective across deployments.
type redisRevocationStore struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisRevocationStore connects to the Redis instance described by cfg,
// pings it, and returns the revocation store.
func NewRedisRevocationStore(ctx context.Context, cfg config.Redis, log *logger.Logger) (RevocationStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisRevocationStore").Msg("error connecting revocation store (ping)")
		return nil, fmt.Errorf("error connecting revocation store: %w", err)
	}
	log.Info().Str("addr", cfg.Addr).Msg("connected to revocation store successfully")

	return &redisRevocationStore{
		client: client,
		logger: log,
	}, nil
}

// RevokeToken implements [RevocationStore]. A non-positive ttl means the
// token has already expired and nothing needs to be recorded.
func (s *redisRevocationStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, revokedTokenKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}

	return nil
}

// IsTokenRevoked implements [RevocationStore].
func (s *redisRevocationStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, revokedTokenKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}

	return true, nil
}

// RevokeAllForUser implements [RevocationStore]. The stored cutoff only ever
// moves forward: a later revoke-all never shortens an earlier one.
func (s *redisRevocationStore) RevokeAllForUser(ctx context.Context, userID int64, cutoff time.Time, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := revokedUserKeyPrefix + strconv.FormatInt(userID, 10)

	current, err := s.UserCutoff(ctx, userID)
	if err != nil {
		return err
	}
	if cutoff.Before(current) {
		return nil
	}

	if err := s.client.Set(ctx, key, strconv.FormatInt(cutoff.UnixNano(), 10), ttl).Err(); err != nil {
		return fmt.Errorf("error revoking user tokens: %w", err)
	}

	return nil
}

// UserCutoff implements [RevocationStore].
func (s *redisRevocationStore) UserCutoff(ctx context.Context, userID int64) (time.Time, error) {
	key := revokedUserKeyPrefix + strconv.FormatInt(userID, 10)

	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading user revocation cutoff: %w", err)
	}

	nanos, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed user revocation cutoff: %w", err)
	}

	return time.Unix(0, nanos), nil
}
