package store

import (
	"context"

	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/logger"
)

// Storages bundles every persistence backend the service layer depends on.
type Storages struct {
	UserRepository  UserRepository
	RevocationStore RevocationStore
}

// NewStorages connects all configured storage backends and returns the
// container. The relational database is mandatory; when no redis address is
// configured the in-process revocation store is used instead, with a warning
// since its state does not survive restarts.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	var revocations RevocationStore
	if cfg.Redis.Addr != "" {
		revocations, err = NewRedisRevocationStore(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn().Msg("no redis address configured: using in-process revocation store, revocations will not survive restarts")
		revocations = NewMemoryRevocationStore()
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		RevocationStore: revocations,
	}, nil
}
