package oauth

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
	googleRevokeURL   = "https://accounts.google.com/o/oauth2/revoke"
)

// googleProvider exchanges Google one-time authorization codes through the
// standard OAuth2 code flow and reads the profile from the userinfo endpoint.
type googleProvider struct {
	conf *oauth2.Config

	// client performs the userinfo and revocation calls. Its timeout
	// bounds every request; the URLs are fields so tests can point them at
	// a local server.
	client      *resty.Client
	userInfoURL string
	revokeURL   string

	logger *logger.Logger
}

// googleUserInfo is the subset of the userinfo payload the service consumes.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// NewGoogleProvider constructs the Google [Provider] from the application
// OAuth configuration.
func NewGoogleProvider(cfg config.OAuth, logger *logger.Logger) Provider {
	return &googleProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		},
		client:      resty.New().SetTimeout(cfg.RequestTimeout),
		userInfoURL: googleUserInfoURL,
		revokeURL:   googleRevokeURL,
		logger:      logger,
	}
}

// Name implements [Provider].
func (p *googleProvider) Name() models.Provider {
	return models.ProviderGoogle
}

// Exchange implements [Provider]. The one-time code is upgraded to an access
// token via the OAuth2 code flow, and the token is then used to fetch the
// user's profile. Both steps are bounded by the client timeout.
func (p *googleProvider) Exchange(ctx context.Context, code string) (models.Claim, error) {
	log := logger.FromContext(ctx)

	if code == "" {
		return models.Claim{}, fmt.Errorf("%w: no authorization code received", ErrExchangeFailed)
	}

	if timeout := p.client.GetClient().Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	providerToken, err := p.conf.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Msg("google code exchange failed")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}

	var info googleUserInfo
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("access_token", providerToken.AccessToken).
		SetQueryParam("alt", "json").
		SetResult(&info).
		Get(p.userInfoURL)
	if err != nil {
		log.Err(err).Msg("google userinfo request failed")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Msg("google userinfo returned error status")
		return models.Claim{}, fmt.Errorf("%w: userinfo status %d", ErrExchangeFailed, resp.StatusCode())
	}

	claim := models.Claim{
		DisplayName:    info.Name,
		Email:          info.Email,
		Picture:        info.Picture,
		Provider:       models.ProviderGoogle,
		ProviderUserID: info.ID,
		ProviderToken:  providerToken.AccessToken,
	}
	if err := claim.Validate(); err != nil {
		log.Err(err).Msg("google returned incomplete identity payload")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}

	return claim, nil
}

// Revoke implements [Provider]. Google revokes by token alone.
func (p *googleProvider) Revoke(ctx context.Context, providerToken, _ string) error {
	log := logger.FromContext(ctx)

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("token", providerToken).
		SetQueryParam("alt", "json").
		Get(p.revokeURL)
	if err != nil {
		log.Err(err).Msg("google grant revocation request failed")
		return fmt.Errorf("%w: %w", ErrRevocationFailed, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Msg("google grant revocation returned error status")
		return fmt.Errorf("%w: status %d", ErrRevocationFailed, resp.StatusCode())
	}

	return nil
}
