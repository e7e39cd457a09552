package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-replisync/internal/adapter"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get(adapter.PathVersion, h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post(adapter.PathPull, h.pull)
		r.Post(adapter.PathPush, h.push)
	})

	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
