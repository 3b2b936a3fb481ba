package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/terrain-rental/internal/config"
	"github.com/iliyamo/terrain-rental/internal/request"
	"github.com/iliyamo/terrain-rental/internal/utils"
)

func serve(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, request.Identity) {
	t.Helper()
	e := echo.New()
	var seen request.Identity
	e.GET("/ping", func(c echo.Context) error {
		seen = IdentityFrom(c)
		return c.NoContent(http.StatusNoContent)
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestJWTAuthStoresIdentity(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 5, "test@example.com", time.Minute)
	require.NoError(t, err)

	rec, id := serve(t, JWTAuth("secret"), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, request.Identity{UserID: 5, Email: "test@example.com"}, id)
	assert.True(t, request.Authorize(id))
}

func TestJWTAuthRejects(t *testing.T) {
	tok, err := utils.NewAccessToken("other", 5, "x@example.com", time.Minute)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"wrong secret": "Bearer " + tok.Token,
	} {
		t.Run(name, func(t *testing.T) {
			rec, _ := serve(t, JWTAuth("secret"), header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestIdentityFromAnonymous(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.False(t, IdentityFrom(c).Authenticated())
	assert.Equal(t, "guest", userID(c))

	c.Set(identityKey, request.Identity{UserID: 12})
	assert.Equal(t, "12", userID(c))
}

func TestTokenBucketDisabledPassesThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true}
	rec, _ := serve(t, NewTokenBucket(cfg, nil, nil), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/terrains", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/terrains")
	c.Set(identityKey, request.Identity{UserID: 3})

	cases := map[string]string{
		"ip":            "rl:ip:10.0.0.7",
		"user":          "rl:user:3",
		"route":         "rl:route:POST /v1/terrains",
		"ip_user":       "rl:ip:10.0.0.7:user:3",
		"user_route":    "rl:user:3:route:POST /v1/terrains",
		"ip_user_route": "rl:ip:10.0.0.7:user:3:route:POST /v1/terrains",
	}
	for strategy, want := range cases {
		got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
		assert.Equal(t, want, got, strategy)
	}
}

func TestBucketArgs(t *testing.T) {
	cfg := config.RateLimitConfig{
		Capacity:       60,
		RefillTokens:   2,
		RefillInterval: 1500 * time.Millisecond,
		TTL:            10 * time.Minute,
	}
	now := time.UnixMilli(1_700_000_000_123)

	assert.Equal(t, []any{int64(1_700_000_000_123), 60, 2, int64(1500), int64(600_000)}, bucketArgs(cfg, now))
}
