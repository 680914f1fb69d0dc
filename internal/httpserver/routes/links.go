package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/handlers"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	authed := r.With(mw.Auth(d.Auth, d.Logger))

	authed.Get("/links", handlers.ListLinks(d))
	authed.Post("/links", handlers.CreateLink(d))
	authed.Put("/links/{id}", handlers.UpdateLink(d))
	authed.Delete("/links/{id}", handlers.DeleteLink(d))
	authed.Get("/links/switch", handlers.SwitchLink(d))
	authed.Post("/links/check", handlers.CheckLink(d))
}
