package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type fakeResolver map[string]*identity.Principal

func (f fakeResolver) Execute(_ context.Context, token string) (*identity.Principal, error) {
	if p, ok := f[token]; ok {
		return p, nil
	}
	return nil, httperr.ErrUnauthorized("unauthorized")
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/x/:token", func(c *gin.Context) {
		if p := Principal(c); p != nil {
			c.String(http.StatusOK, "user")
			return
		}
		c.String(http.StatusOK, "guest")
	})
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	resolver := fakeResolver{"good": {UserID: 1}}
	r := newEngine(AuthMiddleware(resolver))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(r, "/x/1", tt.header); w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := newEngine(OptionalAuthMiddleware(fakeResolver{"good": {UserID: 1}}))

	if w := do(r, "/x/1", ""); w.Code != http.StatusOK || w.Body.String() != "guest" {
		t.Fatalf("anonymous should pass as guest: %d %s", w.Code, w.Body.String())
	}
	if w := do(r, "/x/1", "Bearer good"); w.Body.String() != "user" {
		t.Fatalf("expected user, got %s", w.Body.String())
	}
	if w := do(r, "/x/1", "Bearer bad"); w.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token must not downgrade to guest, got %d", w.Code)
	}
}

type countingLimiter struct {
	allow int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.seen == nil {
		l.seen = map[string]int{}
	}
	l.seen[key]++
	return l.seen[key] <= l.allow, nil
}

func TestRateLimitGuestOnly(t *testing.T) {
	lim := &countingLimiter{allow: 1}
	r := newEngine(
		OptionalAuthMiddleware(fakeResolver{"good": {UserID: 1}}),
		RateLimit(lim, GuestKey("token"), zap.NewNop()),
	)

	if w := do(r, "/x/abc", ""); w.Code != http.StatusOK {
		t.Fatalf("first guest request: %d", w.Code)
	}
	if w := do(r, "/x/abc", ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second guest request should be limited, got %d", w.Code)
	}
	if w := do(r, "/x/other", ""); w.Code != http.StatusOK {
		t.Fatalf("other token has its own budget, got %d", w.Code)
	}
	for i := 0; i < 3; i++ {
		if w := do(r, "/x/abc", "Bearer good"); w.Code != http.StatusOK {
			t.Fatalf("signed-in callers are not limited, got %d", w.Code)
		}
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := newEngine(RateLimit(&countingLimiter{err: errors.New("redis down")}, ByIP, zap.NewNop()))

	if w := do(r, "/x/1", ""); w.Code != http.StatusOK {
		t.Fatalf("limiter errors should not block traffic, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := do(r, "/x/1", "")
	if w.Header().Get(HeaderRequestID) == "" {
		t.Fatal("request id not generated")
	}

	req := httptest.NewRequest(http.MethodGet, "/x/1", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Fatalf("incoming id not propagated: %s", got)
	}
}

func TestRecoveryHidesPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("db handle is nil") })

	w := do(r, "/boom", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := w.Body.String(); body == "" || strings.Contains(body, "db handle") {
		t.Fatalf("panic detail leaked: %s", body)
	}
}
