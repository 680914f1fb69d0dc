package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/handlers"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
)

func init() { Register(registerLegacy) }

func registerLegacy(r chi.Router, d deps.Deps) {
	authed := r.With(mw.Auth(d.Auth, d.Logger))

	authed.Get("/notes", handlers.LegacyListNotes(d))
	authed.Post("/notes", handlers.LegacyCreateNote(d))
	authed.Put("/notes", handlers.LegacyUpdateNote(d))
}
