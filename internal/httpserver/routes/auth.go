package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/handlers"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.AuthRateBurst,
		RefillPerIPPerMin: d.AuthRatePerMin,
		TrustProxy:        d.TrustProxy,
	}))

	limited.Post("/auth/signup", handlers.Signup(d))
	limited.Post("/auth/login", handlers.Login(d))
	limited.Post("/auth/refresh", handlers.Refresh(d))
	limited.Post("/auth/logout", handlers.Logout(d))
}
