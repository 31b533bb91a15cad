package oauth

import (
	"fmt"

	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/models"
)

// Providers is the registry of configured identity providers keyed by name.
type Providers struct {
	byName map[models.Provider]Provider
}

// NewProviders builds the registry from the application OAuth configuration.
// A provider is registered only when its credentials are present, so a
// deployment may enable any subset.
func NewProviders(cfg config.OAuth, logger *logger.Logger) *Providers {
	providers := &Providers{byName: make(map[models.Provider]Provider)}

	if cfg.Google.ClientID != "" && cfg.Google.ClientSecret != "" {
		providers.register(NewGoogleProvider(cfg, logger))
	}
	if cfg.Facebook.ClientID != "" && cfg.Facebook.ClientSecret != "" {
		providers.register(NewFacebookProvider(cfg, logger))
	}

	return providers
}

func (p *Providers) register(provider Provider) {
	p.byName[provider.Name()] = provider
}

// Get returns the provider registered under the given name.
func (p *Providers) Get(name models.Provider) (Provider, error) {
	provider, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return provider, nil
}

// Names lists the registered provider names.
func (p *Providers) Names() []models.Provider {
	names := make([]models.Provider, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}
	return names
}
