package main

import (
	"context"
	"fmt"
	"time"

	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/handler"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/internal/server"
	"github.com/icproject/catalog-auth/internal/service"
	"github.com/icproject/catalog-auth/internal/store"
	"github.com/icproject/catalog-auth/internal/workers"
	"github.com/icproject/catalog-auth/models"
)

// revocationPruneInterval is how often the in-process revocation store is
// swept for expired entries.
const revocationPruneInterval = time.Minute

// Injected by linker flags at build time.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("catalog-auth")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	// Only the in-process revocation store needs a janitor; redis expires
	// its keys on its own.
	if pruner, ok := storages.RevocationStore.(workers.Pruner); ok {
		background := workers.NewWorkers(workers.NewRevocationJanitor(pruner, revocationPruneInterval, log))
		go background.Run()
	}

	services, err := service.NewServices(*storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(buildInfo models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", buildInfo.BuildVersion())
	fmt.Printf("Build date: %s\n", buildInfo.BuildDate())
	fmt.Printf("Build commit: %s\n", buildInfo.BuildCommit())
}
