package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/handlers"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
)

func init() { Register(registerCues) }

func registerCues(r chi.Router, d deps.Deps) {
	authed := r.With(mw.Auth(d.Auth, d.Logger))

	authed.Get("/cues", handlers.ListCues(d))
	authed.Post("/cues", handlers.CreateCue(d))
	authed.Patch("/cues/{id}", handlers.UpdateCue(d))
	authed.Delete("/cues/{id}", handlers.DeleteCue(d))
}
