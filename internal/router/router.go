// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cinetick/cinetick/internal/config"
	"github.com/cinetick/cinetick/internal/handler"
	"github.com/cinetick/cinetick/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication routes.  Unauthenticated
// operations live under /v1/auth; the session endpoint requires a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout inspects the Authorization header itself so it works with a
	// refresh token alone and does not need the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/session", a.Session)
}

// RegisterMovies registers the public movie browse endpoints.  The catalog
// is static, so responses are cached and rate limited per client.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler, rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig) {
	g := e.Group("/v1/movies")
	g.Use(middleware.NewTokenBucket(rlCfg, rdb))
	g.Use(middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("", m.List)
	g.GET("/:id", m.Get)
}

// RegisterBooking registers the booking flow endpoints.  Every route
// requires a valid access token: drafts, checkout and history are all
// scoped to the authenticated user.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.POST("/drafts", b.CreateDraft)
	g.GET("/drafts/:id", b.GetDraft)
	g.PUT("/drafts/:id/showtime", b.SetShowtime)
	g.POST("/drafts/:id/seats", b.ToggleSeat)
	g.POST("/drafts/:id/checkout", b.Checkout)
	g.GET("/bookings", b.History)
}
