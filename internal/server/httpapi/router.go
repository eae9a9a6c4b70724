package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/profilekeeper/internal/logging"
)

func NewRouter(h *Handler, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Post("/register", h.Register)
	r.Get("/user/{user_id}", h.GetUser)
	r.Get("/ping", h.Ping)

	return r
}
