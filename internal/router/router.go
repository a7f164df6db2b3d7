// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/farhanrds/scholarship-finder/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check used by
// load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes.  The login flow
// is the only place session cookies are minted; everything under the
// guarded group relies on the session middleware to verify or renew them.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, session echo.MiddlewareFunc) {
	// Operations that do not require an existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Logout revokes the refresh session from the cookie; it deliberately
	// skips the guard so an expired session can still be cleared.
	g.POST("/logout", a.Logout)

	// Protected endpoint returning the verified claims.
	auth := e.Group("/v1")
	auth.Use(session)
	auth.GET("/me", a.Me)
}
