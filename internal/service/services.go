package service

import (
	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/internal/oauth"
	"github.com/icproject/catalog-auth/internal/store"
	"github.com/icproject/catalog-auth/internal/token"
)

// Compile-time checks that the concrete collaborators satisfy the contracts
// the gateway is written against.
var (
	_ TokenService     = (*token.Service)(nil)
	_ ProviderRegistry = (*oauth.Providers)(nil)
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(storages store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	tokens := token.NewService(cfg.App, storages.RevocationStore, logger)
	providers := oauth.NewProviders(cfg.OAuth, logger)
	reconciler := NewReconcileService(storages.UserRepository, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, tokens, providers, reconciler, logger),
		AppInfoService: appInfoService,
	}, nil
}
