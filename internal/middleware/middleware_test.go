package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/catalog"
	"github.com/iliyamo/fixture-tickets/internal/config"
	"github.com/iliyamo/fixture-tickets/internal/identity"
	"github.com/iliyamo/fixture-tickets/internal/model"
	"github.com/iliyamo/fixture-tickets/internal/utils"
)

const secret = "test-secret"

func newSessions() *booking.Sessions {
	engine := booking.NewEngine(booking.Deps{
		Ledger:   booking.NewMemoryLedger(),
		Fixtures: catalog.NewStatic(catalog.DefaultFixtures()),
	})
	return booking.NewSessions(identity.NewDemoGate(), engine, time.Hour, nil)
}

func bearer(t *testing.T, who model.Identity, sid string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, who.ID, who.Role, sid, 5, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func serve(e *echo.Echo, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAndRole(t *testing.T) {
	sessions := newSessions()
	s := sessions.Open()
	who, err := s.Login(context.Background(), "fan@club.com", "123456")
	require.NoError(t, err)

	e := echo.New()
	e.GET("/p", func(c echo.Context) error {
		_, ok := Session(c)
		assert.True(t, ok)
		return c.String(http.StatusOK, UserID(c)+"|"+Role(c))
	}, JWTAuth(secret, sessions), RequireRole(model.RolePatron))

	rec := serve(e, bearer(t, who, s.ID()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, who.ID+"|PATRON", rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "Bearer junk").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, bearer(t, who, "unknown-session")).Code)

	other := model.Identity{ID: "someone-else", Role: model.RolePatron}
	assert.Equal(t, http.StatusUnauthorized, serve(e, bearer(t, other, s.ID())).Code, "token must match the session identity")

	admin := sessions.Open()
	adminWho, err := admin.Login(context.Background(), identity.AdminEmail, identity.AdminPassword)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, serve(e, bearer(t, adminWho, admin.ID())).Code)

	s.Logout()
	assert.Equal(t, http.StatusUnauthorized, serve(e, bearer(t, who, s.ID())).Code)
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/fixtures", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/fixtures")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}
	assert.Equal(t, "rl:ip:10.0.0.1", rateKey(cfg, c))

	cfg.KeyStrategy = "ip_user_route"
	assert.Equal(t, "rl:ip:10.0.0.1:user:anon:route:GET /v1/fixtures", rateKey(cfg, c))

	c.Set(CtxUserID, "u1")
	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:u1", rateKey(cfg, c))
}

func TestCacheKeyIncludesParamsAndQuery(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "c", KeyStrategy: "route_query"}
	key := func(target, id string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/v1/fixtures/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return cacheKey(cfg, c)
	}
	assert.NotEqual(t, key("/v1/fixtures/1", "1"), key("/v1/fixtures/2", "2"))
	assert.NotEqual(t, key("/v1/fixtures/1?x=1", "1"), key("/v1/fixtures/1", "1"))
	assert.Equal(t, key("/v1/fixtures/1", "1"), key("/v1/fixtures/1", "1"))
}

func TestDisabledMiddlewarePassThrough(t *testing.T) {
	e := echo.New()
	e.GET("/p", func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
		NewRedisCache(config.CacheConfig{Enabled: true}, nil, nil),
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, nil))

	rec := serve(e, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCaptureWriterDropsOversizedBodies(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	assert.False(t, cw.truncated)
	_, _ = cw.Write([]byte("def"))
	assert.True(t, cw.truncated)
	assert.Equal(t, "abcdef", rec.Body.String())
}
