package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/jwt"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine() *gin.Engine {
	e := gin.New()
	e.Use(RequestInit(), ResponseInit())
	return e
}

func decode(t *testing.T, w *httptest.ResponseRecorder) types.ResponseAPI {
	t.Helper()
	var body types.ResponseAPI
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

func TestSendRendersAppError(t *testing.T) {
	e := newEngine()
	e.GET("/x", func(c *gin.Context) {
		Send(c)(&types.Response{Error: apperror.NewValidationError("phone")})
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d", w.Code)
	}
	body := decode(t, w)
	if body.Error == nil || body.Error.Field != "phone" || body.Error.Kind != string(apperror.KindValidation) {
		t.Fatalf("error = %+v", body.Error)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("missing request id")
	}
}

func TestRequestInitKeepsCallerID(t *testing.T) {
	e := newEngine()
	e.GET("/x", func(c *gin.Context) {
		Send(c)(&types.Response{Data: c.GetString(RequestIDKey)})
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if got := decode(t, w).Data; got != "abc" {
		t.Fatalf("data = %v", got)
	}
}

func TestOptionalAuthAnonymous(t *testing.T) {
	e := newEngine()
	e.Use(OptionalAuth())
	e.GET("/me", func(c *gin.Context) {
		user, _ := GetUser(c)
		Send(c)(&types.Response{Data: user})
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), ClientIDCookie) {
		t.Fatal("expected client id cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(ClientIDHeader, "6f1c3b7e-8a0e-4c1e-9a55-2b8d1c7e4f10")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)

	data := decode(t, w).Data.(map[string]interface{})
	if data["id"] != "anon-6f1c3b7e-8a0e-4c1e-9a55-2b8d1c7e4f10" || data["anonymous"] != true {
		t.Fatalf("user = %v", data)
	}
}

func TestOptionalAuthToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, _, err := jwt.GenerateToken(types.UserWithAuth{ID: "r-1", Role: enum.RESELLER})
	if err != nil {
		t.Fatal(err)
	}

	e := newEngine()
	e.Use(OptionalAuth())
	e.GET("/me", func(c *gin.Context) {
		user, _ := GetUser(c)
		Send(c)(&types.Response{Data: string(user.EffectiveRole())})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if got := decode(t, w).Data; got != "reseller" {
		t.Fatalf("role = %v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestAuthMiddlewareRequiresToken(t *testing.T) {
	e := newEngine()
	e.Use(AuthMiddleware())
	e.GET("/x", func(c *gin.Context) { Send(c)(&types.Response{}) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestMaintenance(t *testing.T) {
	site := config.SiteConfig{Maintenance: true, Message: "Back soon", TelegramLink: "https://t.me/x"}

	e := newEngine()
	e.Use(Maintenance(func() config.SiteConfig { return site }, "/api/settings"))
	e.GET("/api/orders", func(c *gin.Context) { Send(c)(&types.Response{}) })
	e.GET("/api/settings/site", func(c *gin.Context) { Send(c)(&types.Response{}) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d", w.Code)
	}
	body := decode(t, w)
	if body.Message != "Back soon" {
		t.Fatalf("message = %q", body.Message)
	}
	if body.Data.(map[string]interface{})["telegramLink"] != "https://t.me/x" {
		t.Fatalf("data = %v", body.Data)
	}

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings/site", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("exempt code = %d", w.Code)
	}

	site.Maintenance = false
	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code after maintenance = %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewClientRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	e := newEngine()
	e.Use(OptionalAuth(), rl.Middleware())
	e.GET("/x", func(c *gin.Context) { Send(c)(&types.Response{}) })

	do := func(client string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(ClientIDHeader, client)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		return w.Code
	}

	a := "11111111-1111-1111-1111-111111111111"
	b := "22222222-2222-2222-2222-222222222222"
	if do(a) != http.StatusOK || do(a) != http.StatusOK {
		t.Fatal("burst should pass")
	}
	if code := do(a); code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d", code)
	}
	if code := do(b); code != http.StatusOK {
		t.Fatalf("other client = %d", code)
	}
	if n := rl.cleanup(); n != 2 {
		t.Fatalf("active clients = %d", n)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewServerMetrics("test")
	e := newEngine()
	e.Use(Metrics(m))
	e.GET("/x", func(c *gin.Context) { Send(c)(&types.Response{}) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	mw := httptest.NewRecorder()
	m.Handler().ServeHTTP(mw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(mw.Body.String(), `basseinpay_test_http_requests_total{handler="/x",status="200"} 1`) {
		t.Fatalf("metrics output missing request counter:\n%s", mw.Body.String())
	}
}

func TestCorsPreflight(t *testing.T) {
	e := gin.New()
	e.Use(CorsMiddleware([]string{"https://shop.example"}))
	e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Fatalf("allow origin = %q", got)
	}
}
