package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/terrain-rental/internal/handler"    // handlers that implement the endpoints
	"github.com/iliyamo/terrain-rental/internal/middleware" // JWT authentication and rate limiting
)

// Deps carries everything the routes need.
type Deps struct {
	Health    echo.HandlerFunc
	Auth      *handler.AuthHandler
	Terrains  *handler.TerrainHandler
	JWTSecret string
	RateLimit echo.MiddlewareFunc // optional; applied to every /v1 route
}

// RegisterRoutes registers every route on e.
func RegisterRoutes(e *echo.Echo, d Deps) {
	// Health check for load balancers and monitoring; never rate limited.
	e.GET("/healthz", d.Health)

	// All API routes live under /v1 and share the rate limiter.
	v1 := e.Group("/v1")
	if d.RateLimit != nil {
		v1.Use(d.RateLimit)
	}

	// Login is public; it issues the access token used below.
	v1.POST("/auth/login", d.Auth.Login)

	// Browsing terrains and their reviews does not require a session.
	v1.GET("/terrains/:id", d.Terrains.Get)
	v1.GET("/terrains/:id/reviews", d.Terrains.Reviews)

	// Creating a terrain requires a valid access token; the handler
	// authorizes the resulting identity.
	v1.POST("/terrains", d.Terrains.Create, middleware.JWTAuth(d.JWTSecret))
}
