package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/middleware"
	"github.com/Baru2006/EasyRecharge-MM/internal/repository"
	preferenceRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/preference"
	settingsService "github.com/Baru2006/EasyRecharge-MM/internal/service/settings"
	"github.com/gin-gonic/gin"
)

const clientID = "0b5f7c52-8c1e-4e5a-9d55-6a4f1d7a2b11"

func init() {
	gin.SetMode(gin.TestMode)
}

type themeStore struct {
	preferenceRepo.IRepository
	themes map[string]enum.Theme
}

func (s *themeStore) Get(userID string) (*preferenceRepo.Preferences, error) {
	theme, ok := s.themes[userID]
	if !ok {
		theme = enum.LIGHT
	}
	return &preferenceRepo.Preferences{Theme: theme}, nil
}

func (s *themeStore) SetTheme(userID string, theme enum.Theme) error {
	s.themes[userID] = theme
	return nil
}

func newEngine(store *themeStore, site *config.SiteConfig) *gin.Engine {
	svc := settingsService.NewService(repository.IRepository{Preference: store}, site, "")

	e := gin.New()
	e.Use(middleware.RequestInit(), middleware.ResponseInit())
	api := e.Group("/api", middleware.OptionalAuth())
	NewHandler(context.Background(), svc).NewRoutes(api)
	return e
}

func do(e *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(middleware.ClientIDHeader, clientID)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestSiteConfigEndpoint(t *testing.T) {
	e := newEngine(&themeStore{themes: map[string]enum.Theme{}}, &config.SiteConfig{
		Maintenance:  true,
		Message:      "Back at 6pm",
		TelegramLink: "https://t.me/basseinpay",
	})

	w := do(e, http.MethodGet, "/api/v1/config", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}

	var body struct {
		Data config.SiteConfig `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Data.Maintenance || body.Data.Message != "Back at 6pm" || body.Data.TelegramLink != "https://t.me/basseinpay" {
		t.Fatalf("site = %+v", body.Data)
	}
}

func TestReloadNeedsToken(t *testing.T) {
	e := newEngine(&themeStore{themes: map[string]enum.Theme{}}, nil)

	if w := do(e, http.MethodPost, "/api/v1/config/reload", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	store := &themeStore{themes: map[string]enum.Theme{}}
	e := newEngine(store, nil)

	if w := do(e, http.MethodPut, "/api/v1/preferences", `{"theme":"dark"}`); w.Code != http.StatusOK {
		t.Fatalf("put code = %d body = %s", w.Code, w.Body.String())
	}
	if got := store.themes["anon-"+clientID]; got != enum.DARK {
		t.Fatalf("stored theme = %q", got)
	}

	w := do(e, http.MethodGet, "/api/v1/preferences", "")
	var body struct {
		Data preferenceRepo.Preferences `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Theme != enum.DARK {
		t.Fatalf("theme = %q", body.Data.Theme)
	}

	if w := do(e, http.MethodPut, "/api/v1/preferences", `{"theme":"sepia"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid theme code = %d", w.Code)
	}
}
