package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/terrain-rental/internal/request" // Identity passed to handlers
	"github.com/iliyamo/terrain-rental/internal/utils"   // access token parsing
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the caller's request.Identity in the context. The provided
// secret must match the one used when issuing tokens. Handlers read the
// identity with IdentityFrom.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Signature, algorithm, expiry and subject are all checked here.
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			uid, _ := claims.UserID() // already validated by ParseAccessToken

			c.Set(identityKey, request.Identity{UserID: uid, Email: claims.Email})
			return next(c)
		}
	}
}
