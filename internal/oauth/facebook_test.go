package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFacebookProvider(t *testing.T, handler http.Handler) *facebookProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &facebookProvider{
		clientID:     "test-client",
		clientSecret: "test-secret",
		client:       resty.New().SetBaseURL(server.URL).SetTimeout(2 * time.Second),
		logger:       logger.Nop(),
	}
}

func facebookGraphMux(t *testing.T) *http.ServeMux {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "short-lived", r.URL.Query().Get("fb_exchange_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"long-lived","token_type":"bearer"}`))
	})
	mux.HandleFunc("/v3.2/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "long-lived", r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42","name":"Grace Hopper","email":"grace@example.com"}`))
	})
	mux.HandleFunc("/v3.2/me/picture", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"url":"https://img.example.com/grace"}}`))
	})
	return mux
}

func TestFacebookProvider_Exchange(t *testing.T) {
	provider := newTestFacebookProvider(t, facebookGraphMux(t))

	claim, err := provider.Exchange(context.Background(), "short-lived")
	require.NoError(t, err)

	assert.Equal(t, models.ProviderFacebook, claim.Provider)
	assert.Equal(t, "42", claim.ProviderUserID)
	assert.Equal(t, "grace@example.com", claim.Email)
	assert.Equal(t, "Grace Hopper", claim.DisplayName)
	assert.Equal(t, "https://img.example.com/grace", claim.Picture)
	assert.Equal(t, "long-lived", claim.ProviderToken)
}

func TestFacebookProvider_ExchangePictureUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"long-lived"}`))
	})
	mux.HandleFunc("/v3.2/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42","name":"Grace Hopper","email":"grace@example.com"}`))
	})
	mux.HandleFunc("/v3.2/me/picture", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	provider := newTestFacebookProvider(t, mux)

	claim, err := provider.Exchange(context.Background(), "short-lived")
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", claim.Email)
	assert.Empty(t, claim.Picture)
}

func TestFacebookProvider_ExchangeEmptyCode(t *testing.T) {
	provider := newTestFacebookProvider(t, http.NewServeMux())

	_, err := provider.Exchange(context.Background(), "")
	assert.ErrorIs(t, err, ErrExchangeFailed)
}

func TestFacebookProvider_ExchangeCodeRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid code"}}`, http.StatusBadRequest)
	})

	provider := newTestFacebookProvider(t, mux)

	_, err := provider.Exchange(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrExchangeFailed)
}

func TestFacebookProvider_ExchangeMissingEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"long-lived"}`))
	})
	mux.HandleFunc("/v3.2/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42","name":"No Email Granted"}`))
	})
	mux.HandleFunc("/v3.2/me/picture", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{}}`))
	})

	provider := newTestFacebookProvider(t, mux)

	_, err := provider.Exchange(context.Background(), "short-lived")
	assert.ErrorIs(t, err, ErrExchangeFailed)
	assert.ErrorIs(t, err, models.ErrClaimMissingEmail)
}

func TestFacebookProvider_Revoke(t *testing.T) {
	var method, path string
	mux := http.NewServeMux()
	mux.HandleFunc("/v3.2/42/permissions", func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		assert.Equal(t, "long-lived", r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	provider := newTestFacebookProvider(t, mux)

	err := provider.Revoke(context.Background(), "long-lived", "42")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/v3.2/42/permissions", path)
}

func TestFacebookProvider_RevokeRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v3.2/42/permissions", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"token expired"}}`, http.StatusUnauthorized)
	})

	provider := newTestFacebookProvider(t, mux)

	err := provider.Revoke(context.Background(), "expired", "42")
	assert.ErrorIs(t, err, ErrRevocationFailed)
}
