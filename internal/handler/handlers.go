package handler

import (
	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/handler/http"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}, nil
}
