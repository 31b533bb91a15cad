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
	"golang.org/x/oauth2"
)

func newTestGoogleProvider(t *testing.T, handler http.Handler) (*googleProvider, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &googleProvider{
		conf: &oauth2.Config{
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			Endpoint: oauth2.Endpoint{
				AuthURL:  server.URL + "/auth",
				TokenURL: server.URL + "/token",
			},
			RedirectURL: "http://localhost/callback",
			Scopes:      []string{"openid", "email", "profile"},
		},
		client:      resty.New().SetTimeout(2 * time.Second),
		userInfoURL: server.URL + "/userinfo",
		revokeURL:   server.URL + "/revoke",
		logger:      logger.Nop(),
	}, server
}

func TestGoogleProvider_Exchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"provider-token-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "provider-token-1", r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"108","email":"ada@example.com","name":"Ada Lovelace","picture":"https://img.example.com/ada"}`))
	})

	provider, _ := newTestGoogleProvider(t, mux)

	claim, err := provider.Exchange(context.Background(), "one-time-code")
	require.NoError(t, err)

	assert.Equal(t, models.ProviderGoogle, claim.Provider)
	assert.Equal(t, "108", claim.ProviderUserID)
	assert.Equal(t, "ada@example.com", claim.Email)
	assert.Equal(t, "Ada Lovelace", claim.DisplayName)
	assert.Equal(t, "https://img.example.com/ada", claim.Picture)
	assert.Equal(t, "provider-token-1", claim.ProviderToken)
}

func TestGoogleProvider_ExchangeEmptyCode(t *testing.T) {
	provider, _ := newTestGoogleProvider(t, http.NewServeMux())

	_, err := provider.Exchange(context.Background(), "")
	assert.ErrorIs(t, err, ErrExchangeFailed)
}

func TestGoogleProvider_ExchangeCodeRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	})

	provider, _ := newTestGoogleProvider(t, mux)

	_, err := provider.Exchange(context.Background(), "stale-code")
	assert.ErrorIs(t, err, ErrExchangeFailed)
}

func TestGoogleProvider_ExchangeIncompleteProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"provider-token-1","token_type":"Bearer"}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"108","name":"No Email"}`))
	})

	provider, _ := newTestGoogleProvider(t, mux)

	_, err := provider.Exchange(context.Background(), "one-time-code")
	assert.ErrorIs(t, err, ErrExchangeFailed)
	assert.ErrorIs(t, err, models.ErrClaimMissingEmail)
}

func TestGoogleProvider_Revoke(t *testing.T) {
	var revokedToken string
	mux := http.NewServeMux()
	mux.HandleFunc("/revoke", func(w http.ResponseWriter, r *http.Request) {
		revokedToken = r.URL.Query().Get("token")
		w.WriteHeader(http.StatusOK)
	})

	provider, _ := newTestGoogleProvider(t, mux)

	err := provider.Revoke(context.Background(), "provider-token-1", "108")
	require.NoError(t, err)
	assert.Equal(t, "provider-token-1", revokedToken)
}

func TestGoogleProvider_RevokeRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/revoke", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusBadRequest)
	})

	provider, _ := newTestGoogleProvider(t, mux)

	err := provider.Revoke(context.Background(), "already-dead", "108")
	assert.ErrorIs(t, err, ErrRevocationFailed)
}
