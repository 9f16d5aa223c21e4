package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/config"
	"hrms/tenant"
	"hrms/testutil"
	"hrms/utils"
)

func newProtectedApp(tokens *utils.TokenService) *fiber.App {
	app := fiber.New()
	app.Get("/me", Protected(tokens), func(c *fiber.Ctx) error {
		tc, err := tenant.Require(c.UserContext())
		if err != nil {
			return utils.HandleError(c, testutil.NewLogger(), err)
		}
		local, ok := Tenant(c)
		if !ok || local != tc {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(tc)
	})
	return app
}

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body["error"]
}

func TestProtected(t *testing.T) {
	tokens := utils.NewTokenService("test-secret", time.Hour)
	app := newProtectedApp(tokens)

	valid, err := tokens.Issue(7, 3)
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	expired, err := tokens.WithClock(func() time.Time { return past }).Issue(7, 3)
	require.NoError(t, err)

	foreign, err := utils.NewTokenService("other-secret", time.Hour).Issue(7, 3)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{name: "missing header", header: "", message: "Authorization required"},
		{name: "no scheme", header: valid, message: "Invalid authorization format"},
		{name: "wrong scheme", header: "Basic " + valid, message: "Invalid authorization format"},
		{name: "expired", header: "Bearer " + expired, message: "Token expired"},
		{name: "wrong key", header: "Bearer " + foreign, message: "Invalid token"},
		{name: "garbage", header: "Bearer not.a.token", message: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tt.message, errorBody(t, resp))
		})
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+valid)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var tc tenant.Context
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tc))
		assert.Equal(t, tenant.Context{UserID: 7, OrgID: 3}, tc)
	})
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS("http://localhost:3000/"))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))

	req = httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://evil.test")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestAuthRateLimiter(t *testing.T) {
	cfg := &config.Config{RateLimitAuth: 2}

	app := fiber.New()
	app.Post("/login", AuthRateLimiter(cfg, nil, testutil.NewLogger()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	storage := NewRateLimitStorage(config.RedisConfig{Enabled: true, Address: mr.Addr()})
	require.NotNil(t, storage)
	t.Cleanup(func() { _ = storage.Close() })

	val, err := storage.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, storage.Set("key", []byte("value"), time.Minute))
	val, err = storage.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)

	mr.FastForward(2 * time.Minute)
	val, err = storage.Get("key")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, storage.Set("other", []byte("x"), 0))
	require.NoError(t, storage.Delete("other"))
	assert.False(t, mr.Exists("other"))

	require.NoError(t, storage.Set("a", []byte("1"), 0))
	require.NoError(t, storage.Reset())
	assert.False(t, mr.Exists("a"))

	assert.Nil(t, NewRateLimitStorage(config.RedisConfig{Enabled: false}))
}

func TestAuthRateLimiterWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	storage := NewRedisStorage(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = storage.Close() })

	app := fiber.New()
	app.Post("/register", AuthRateLimiter(&config.Config{RateLimitAuth: 1}, storage, testutil.NewLogger()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/register", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/register", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, mr.Keys())
}
