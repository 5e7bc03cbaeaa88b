package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/middleware"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/pricing"
	pricingService "github.com/Baru2006/EasyRecharge-MM/internal/service/pricing"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(gate ...gin.HandlerFunc) *gin.Engine {
	calculator := pricing.NewCalculator(pricing.DefaultTable(), pricing.DefaultFeeConfig())

	e := gin.New()
	e.Use(middleware.RequestInit(), middleware.ResponseInit())
	api := e.Group("/api", middleware.OptionalAuth())
	NewHandler(context.Background(), pricingService.NewService(calculator, "MMK"), gate...).NewRoutes(api)
	return e
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func call(t *testing.T, e *gin.Engine, req *http.Request) (int, json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return w.Code, body.Data
}

func TestQuoteEndpoint(t *testing.T) {
	e := newEngine()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(`{"category":"smm","key":"IG-Followers","quantity":"1000"}`))
	req.Header.Set("Content-Type", "application/json")
	code, data := call(t, e, req)
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}

	var quote struct {
		Total        int64  `json:"total"`
		TotalDisplay string `json:"total_display"`
	}
	if err := json.Unmarshal(data, &quote); err != nil {
		t.Fatal(err)
	}
	if quote.Total != 20000 || quote.TotalDisplay != "20,000 MMK" {
		t.Fatalf("quote = %+v", quote)
	}
}

func TestQuoteBadBody(t *testing.T) {
	e := newEngine()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	if code, _ := call(t, e, req); code != http.StatusBadRequest {
		t.Fatalf("code = %d", code)
	}
}

func TestQuoteGated(t *testing.T) {
	e := newEngine(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(`{}`)))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("code = %d", w.Code)
	}

	// the catalog stays readable
	if code, _ := call(t, e, httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil)); code != http.StatusOK {
		t.Fatalf("catalog code = %d", code)
	}
}

func TestPackagesEndpoint(t *testing.T) {
	e := newEngine()

	code, data := call(t, e, httptest.NewRequest(http.MethodGet, "/api/v1/prices/sim/MPT", nil))
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	var packages []pricing.PriceEntry
	if err := json.Unmarshal(data, &packages); err != nil {
		t.Fatal(err)
	}
	if len(packages) != 4 {
		t.Fatalf("packages = %+v", packages)
	}

	if code, _ := call(t, e, httptest.NewRequest(http.MethodGet, "/api/v1/prices/sim/Telenor", nil)); code != http.StatusNotFound {
		t.Fatalf("unknown provider code = %d", code)
	}
}
