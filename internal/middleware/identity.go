package middleware

// identity.go holds the helpers that move the authenticated caller through
// the Echo context. JWTAuth stores it; handlers read it back with
// IdentityFrom and pass it explicitly to authorization checks.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/terrain-rental/internal/request"
)

const identityKey = "identity"

// IdentityFrom returns the caller stored by JWTAuth, or the anonymous
// identity when the route is unauthenticated.
func IdentityFrom(c echo.Context) request.Identity {
	if id, ok := c.Get(identityKey).(request.Identity); ok {
		return id
	}
	return request.Identity{}
}

// userID returns the caller's id as a rate-limit key part, "guest" for
// anonymous callers.
func userID(c echo.Context) string {
	id := IdentityFrom(c)
	if !id.Authenticated() {
		return "guest"
	}
	return strconv.FormatUint(id.UserID, 10)
}
