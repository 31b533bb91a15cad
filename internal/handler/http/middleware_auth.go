package http

import (
	"errors"
	"net/http"

	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/internal/utils"
)

// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
// incoming request does not include an "Authorization" header at all.
var ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, resolves it to a
// user via [service.AuthService.Authenticate], and stores both the user and
// the verified token in the request context before delegating to the next
// handler. Every rejection is a plain 401 with the same generic body, so the
// response never reveals whether the token was absent, expired, revoked, or
// bound to a deleted account.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, accessToken, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("access token rejected")
			writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx = utils.WithUser(ctx, user)
		ctx = utils.WithToken(ctx, accessToken)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
