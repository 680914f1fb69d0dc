package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/handlers"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
)

func init() { Register(registerBadge) }

func registerBadge(r chi.Router, d deps.Deps) {
	authed := r.With(mw.Auth(d.Auth, d.Logger))

	authed.Get("/badge", handlers.GetBadge(d))
	authed.Delete("/badge", handlers.ForgetBadge(d))
}
