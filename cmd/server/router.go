package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/guestbook/internal/api"
	apiMiddleware "github.com/phrazzld/guestbook/internal/api/middleware"
	"github.com/phrazzld/guestbook/internal/service/auth"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	secureCookies := strings.HasPrefix(app.config.Server.BaseURL, "https://")
	r.Use(apiMiddleware.NewSessionMiddleware(app.sessions, secureCookies).LoadSession)

	loginEnabled := app.authenticator != nil
	guestHandler := api.NewGuestHandler(app.guestbook, loginEnabled, app.logger)
	r.Get("/", guestHandler.ListGuests)
	r.Post("/", guestHandler.SignGuestbook)

	if loginEnabled {
		authHandler := api.NewAuthHandler(
			app.authenticator,
			app.sessions,
			app.config.Server.BaseURL,
			app.config.Auth.SessionLifetimeHours,
			app.logger,
		)
		r.Get("/login", authHandler.Login)
		r.Get(auth.CallbackPath, authHandler.Callback)
		r.Post(auth.CallbackPath, authHandler.Callback)
		r.Get("/logout", authHandler.Logout)
	}

	healthHandler := api.NewHealthHandler(app.health, app.poolStats, app.logger)
	r.Get("/health", healthHandler.Health)

	return r
}
