package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/handlers"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
)

func init() { Register(registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	authed := r.With(mw.Auth(d.Auth, d.Logger))

	authed.Get("/settings/domain", handlers.ListDomainSettings(d))
	authed.Put("/settings/domain", handlers.UpsertDomainSetting(d))
	authed.Delete("/settings/domain", handlers.DeleteDomainSetting(d))
}
