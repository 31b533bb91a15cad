package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/internal/utils"
	"github.com/icproject/catalog-auth/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user := models.User{
		Username: request.Username,
		Email:    request.Email,
	}

	session, err := h.services.AuthService.Register(ctx, user, request.Password)
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("user registration failed")
		writeServiceError(w, err)
		return
	}

	log.Info().Int64("id", session.User.UserID).Str("username", session.User.Username).Msg("user registered")

	writeSession(w, session, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.AuthService.Login(ctx, request.Username, request.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", request.Username).Msg("login rejected")
		writeServiceError(w, err)
		return
	}

	log.Info().Int64("id", session.User.UserID).Msg("user logged in")

	writeSession(w, session, http.StatusOK)
}

func (h *Handler) loginOAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	provider := models.Provider(chi.URLParam(r, "provider"))

	var request models.OAuthLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.AuthService.LoginOAuth(ctx, provider, request.Code)
	if err != nil {
		log.Warn().Err(err).Str("provider", string(provider)).Msg("oauth login rejected")
		writeServiceError(w, err)
		return
	}

	log.Info().Int64("id", session.User.UserID).Str("provider", string(provider)).Msg("user logged in via provider")

	writeSession(w, session, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	accessToken, err := h.services.AuthService.Refresh(ctx, request.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("token refresh rejected")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, models.TokenPairResponse{
		AccessToken: accessToken.SignedString,
		TokenType:   "Bearer",
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	accessToken, tokenOK := utils.GetTokenFromContext(ctx)
	if !ok || !tokenOK {
		log.Error().Msg("logout reached without an authenticated user in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	// The refresh token is optional; without it the service falls back to
	// revoking every outstanding token of the user.
	var request models.LogoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			log.Err(err).Msg("invalid JSON was passed")
			writeError(w, "invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	if err := h.services.AuthService.Logout(ctx, user, accessToken, request.RefreshToken); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("logout failed")
		writeServiceError(w, err)
		return
	}

	log.Info().Int64("id", user.UserID).Msg("user logged out")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("me reached without an authenticated user in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func writeSession(w http.ResponseWriter, session models.Session, statusCode int) {
	utils.WriteJSON(w, models.TokenPairResponse{
		AccessToken:  session.AccessToken.SignedString,
		RefreshToken: session.RefreshToken.SignedString,
		TokenType:    "Bearer",
	}, statusCode)
}
