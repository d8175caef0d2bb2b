package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tikevents/tikevents/internal/config"
	"github.com/tikevents/tikevents/internal/utils"
)

const secret = "test-secret"

func protected(e *echo.Echo) {
	g := e.Group("/v1", JWTAuth(secret), RequireRole(utils.RoleOperator))
	g.POST("/venues", func(c echo.Context) error {
		return c.String(http.StatusCreated, Operator(c))
	})
}

func token(t *testing.T, role string) string {
	t.Helper()
	at, err := utils.NewAccessToken(secret, "ops@example.com", role, 5)
	if err != nil {
		t.Fatal(err)
	}
	return at.Token
}

func TestWriteRoutesNeedOperatorToken(t *testing.T) {
	e := echo.New()
	protected(e)

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + token(t, "VIEWER"), http.StatusForbidden},
		{"operator", "Bearer " + token(t, utils.RoleOperator), http.StatusCreated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/venues", nil)
			if tc.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body)
			}
			if tc.status == http.StatusCreated && rec.Body.String() != "ops@example.com" {
				t.Fatalf("operator = %q", rec.Body)
			}
		})
	}
}

func TestRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/events/7", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/events/:id")
	c.Set(ctxOperator, "ops@example.com")

	tests := map[string]string{
		"ip":            "rl:ip:10.0.0.9",
		"ip_route":      "rl:ip:10.0.0.9:route:GET /v1/events/:id",
		"user":          "rl:user:ops@example.com",
		"ip_user_route": "rl:ip:10.0.0.9:user:ops@example.com:route:GET /v1/events/:id",
	}
	for strategy, want := range tests {
		got := rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
		if got != want {
			t.Errorf("%s: key = %q, want %q", strategy, got, want)
		}
	}
}

func TestTokenBucketPassThrough(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	unreachable := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = unreachable.Close() })

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute, Prefix: "rl"}

	tests := map[string]echo.MiddlewareFunc{
		"disabled":     NewTokenBucket(config.RateLimitConfig{Enabled: false}, unreachable, log),
		"no redis":     NewTokenBucket(cfg, nil, log),
		"redis down":   NewTokenBucket(cfg, unreachable, log),
		"reads exempt": NewTokenBucket(config.RateLimitConfig{Enabled: true, WritesOnly: true}, unreachable, log),
	}
	for name, mw := range tests {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			if err := mw(ok)(c); err != nil {
				t.Fatal(err)
			}
			if c.Response().Status != http.StatusNoContent {
				t.Fatalf("status = %d", c.Response().Status)
			}
		})
	}
	if !strings.Contains(logs.String(), "rate limiter unavailable") {
		t.Errorf("redis failure not logged: %q", logs.String())
	}
}

func TestRequestLoggerAndID(t *testing.T) {
	var logs bytes.Buffer
	e := echo.New()
	e.Use(RequestID(), RequestLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "nope") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	id := rec.Header().Get(echo.HeaderXRequestID)
	if len(id) != 36 {
		t.Fatalf("request id = %q", id)
	}
	out := logs.String()
	for _, want := range []string{"level=WARN", "status=418", "request_id=" + id, "uri=/boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
