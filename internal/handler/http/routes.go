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
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/session/refresh", h.refresh)
	})

	// routes behind the access-token gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/session/logout", h.logout)
		r.Post("/api/session/logout_all", h.logoutAll)

		r.Post("/api/credentials", h.createCredential)
		r.Get("/api/credentials", h.listCredentials)
		r.Get("/api/credentials/{id}", h.getCredential)
		r.Put("/api/credentials/{id}", h.updateCredential)
		r.Delete("/api/credentials/{id}", h.deleteCredential)

		r.Post("/api/vault/export", h.exportVault)
		r.Post("/api/vault/import", h.importVault)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
