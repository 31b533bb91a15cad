package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/v1/auth/register", h.register)
		r.Post("/api/v1/auth/login", h.login)
		r.Post("/api/v1/auth/oauth/{provider}", h.loginOAuth)
		r.Post("/api/v1/auth/refresh", h.refresh)
	})

	// routes requiring a valid access token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/v1/auth/logout", h.logout)
		r.Get("/api/v1/auth/me", h.me)
	})

	router.Get("/api/v1/version", h.getServerVersion)

	return router
}
