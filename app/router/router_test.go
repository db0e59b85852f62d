package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocketboost-admin/app/controller"
	"rocketboost-admin/app/middleware"
	"rocketboost-admin/pricing"
	"rocketboost-admin/service"
)

func newTestRouter(t *testing.T, withAuth bool) http.Handler {
	t.Helper()
	return newTestRouterWith(t, withAuth, Options{})
}

func newTestRouterWith(t *testing.T, withAuth bool, opts Options) http.Handler {
	t.Helper()
	engine, err := pricing.NewEngine("")
	require.NoError(t, err)

	auth := service.NewAuthService("admin", "", "secret")
	controllers := &Controllers{
		Order:    controller.NewOrderController(nil, nil),
		Service:  controller.NewServiceController(nil),
		Provider: controller.NewProviderController(nil, nil),
		User:     controller.NewUserController(nil, nil, nil),
		Stats:    controller.NewStatsController(nil),
		Pricing:  controller.NewPricingController(engine, nil),
		Auth:     controller.NewAuthController(auth),
	}

	opts.CORSOrigin = "*"
	if withAuth {
		opts.Tokens = auth
	}
	return NewRouter(controllers, opts)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicEndpoints(t *testing.T) {
	h := newTestRouter(t, true)

	rec := do(h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rocketboost_http_requests_total")
}

func TestRouter_AuthRequired(t *testing.T) {
	h := newTestRouter(t, true)

	for _, path := range []string{"/api/orders", "/api/services", "/api/stats/summary", "/api/pricing/rates"} {
		rec := do(h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"error":"authorization required"}`, rec.Body.String())
	}

	// login is reachable without a token
	rec := do(h, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid username or password"}`, rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t, true)

	rec := do(h, http.MethodOptions, "/api/orders", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_AuthDisabled(t *testing.T) {
	h := newTestRouter(t, false)

	rec := do(h, http.MethodGet, "/api/pricing/rates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"currency":"THB"`)

	rec = do(h, http.MethodGet, "/api/messages/quick?q=", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/api/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func loginFrom(h http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"admin","password":"x"}`))
	req.RemoteAddr = remoteAddr
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRouter_LoginLimiter_ForwardedFor(t *testing.T) {
	t.Run("untrusted proxy headers share the connection bucket", func(t *testing.T) {
		h := newTestRouterWith(t, true, Options{LoginLimiter: middleware.NewRateLimiter(time.Minute, 1)})

		assert.Equal(t, http.StatusUnauthorized, loginFrom(h, "198.51.100.4:1000", "203.0.113.1"))
		assert.Equal(t, http.StatusTooManyRequests, loginFrom(h, "198.51.100.4:1000", "203.0.113.2"))
	})

	t.Run("trusted proxy keys on the forwarded client", func(t *testing.T) {
		h := newTestRouterWith(t, true, Options{
			LoginLimiter: middleware.NewRateLimiter(time.Minute, 1),
			TrustProxy:   true,
		})

		assert.Equal(t, http.StatusUnauthorized, loginFrom(h, "10.0.0.1:1000", "203.0.113.1"))
		assert.Equal(t, http.StatusUnauthorized, loginFrom(h, "10.0.0.1:1000", "203.0.113.2"))
		assert.Equal(t, http.StatusTooManyRequests, loginFrom(h, "10.0.0.1:1000", "203.0.113.1"))
	})
}
