package oauth

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/icproject/catalog-auth/internal/config"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/models"
)

const facebookGraphURL = "https://graph.facebook.com"

// facebookProvider talks to the Facebook Graph API directly. Facebook's
// "code" for our purposes is a short-lived token obtained by the frontend,
// which we trade for a long-lived one before reading the profile.
type facebookProvider struct {
	clientID     string
	clientSecret string

	client *resty.Client
	logger *logger.Logger
}

type facebookToken struct {
	AccessToken string `json:"access_token"`
}

type facebookProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type facebookPicture struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// NewFacebookProvider constructs the Facebook [Provider] from the application
// OAuth configuration.
func NewFacebookProvider(cfg config.OAuth, logger *logger.Logger) Provider {
	return &facebookProvider{
		clientID:     cfg.Facebook.ClientID,
		clientSecret: cfg.Facebook.ClientSecret,
		client:       resty.New().SetBaseURL(facebookGraphURL).SetTimeout(cfg.RequestTimeout),
		logger:       logger,
	}
}

// Name implements [Provider].
func (p *facebookProvider) Name() models.Provider {
	return models.ProviderFacebook
}

// Exchange implements [Provider].
func (p *facebookProvider) Exchange(ctx context.Context, code string) (models.Claim, error) {
	log := logger.FromContext(ctx)

	if code == "" {
		return models.Claim{}, fmt.Errorf("%w: no authorization code received", ErrExchangeFailed)
	}

	token, err := p.exchangeToken(ctx, code)
	if err != nil {
		log.Err(err).Msg("facebook token exchange failed")
		return models.Claim{}, err
	}

	profile, err := p.fetchProfile(ctx, token)
	if err != nil {
		log.Err(err).Msg("facebook profile request failed")
		return models.Claim{}, err
	}

	// The picture is decoration. A failure here does not fail the login.
	picture, err := p.fetchPicture(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("facebook picture request failed")
	}

	claim := models.Claim{
		DisplayName:    profile.Name,
		Email:          profile.Email,
		Picture:        picture,
		Provider:       models.ProviderFacebook,
		ProviderUserID: profile.ID,
		ProviderToken:  token,
	}
	if err := claim.Validate(); err != nil {
		log.Err(err).Msg("facebook returned incomplete identity payload")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}

	return claim, nil
}

func (p *facebookProvider) exchangeToken(ctx context.Context, code string) (string, error) {
	var token facebookToken
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"grant_type":        "fb_exchange_token",
			"client_id":         p.clientID,
			"client_secret":     p.clientSecret,
			"fb_exchange_token": code,
		}).
		SetResult(&token).
		Get("/oauth/access_token")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: token exchange status %d", ErrExchangeFailed, resp.StatusCode())
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrExchangeFailed)
	}
	return token.AccessToken, nil
}

func (p *facebookProvider) fetchProfile(ctx context.Context, token string) (facebookProfile, error) {
	var profile facebookProfile
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       "name,id,email",
			"access_token": token,
		}).
		SetResult(&profile).
		Get("/v3.2/me")
	if err != nil {
		return facebookProfile{}, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	if resp.IsError() {
		return facebookProfile{}, fmt.Errorf("%w: profile status %d", ErrExchangeFailed, resp.StatusCode())
	}
	return profile, nil
}

func (p *facebookProvider) fetchPicture(ctx context.Context, token string) (string, error) {
	var picture facebookPicture
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"redirect":     "0",
			"height":       "200",
			"width":        "200",
			"access_token": token,
		}).
		SetResult(&picture).
		Get("/v3.2/me/picture")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("picture status %d", resp.StatusCode())
	}
	return picture.Data.URL, nil
}

// Revoke implements [Provider]. Deleting the app permissions invalidates all
// tokens Facebook issued for the user.
func (p *facebookProvider) Revoke(ctx context.Context, providerToken, providerUserID string) error {
	log := logger.FromContext(ctx)

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("access_token", providerToken).
		Delete(fmt.Sprintf("/v3.2/%s/permissions", providerUserID))
	if err != nil {
		log.Err(err).Msg("facebook permission revocation request failed")
		return fmt.Errorf("%w: %w", ErrRevocationFailed, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Msg("facebook permission revocation returned error status")
		return fmt.Errorf("%w: status %d", ErrRevocationFailed, resp.StatusCode())
	}

	return nil
}
