package settings

import (
	"os"
	"path/filepath"
	"testing"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/repository"
	preferenceRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/preference"
)

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

func TestPreferences(t *testing.T) {
	store := &themeStore{themes: map[string]enum.Theme{}}
	svc := NewService(repository.IRepository{Preference: store}, nil, "")
	user := types.UserWithAuth{ID: "u1"}

	if got := svc.Preferences(user).Data.(*preferenceRepo.Preferences); got.Theme != enum.LIGHT {
		t.Fatalf("default theme = %s", got.Theme)
	}

	res := svc.UpdatePreferences(user, UpdatePreferencesRequest{Theme: enum.DARK})
	if res.Error != nil || res.Data.(*preferenceRepo.Preferences).Theme != enum.DARK {
		t.Fatalf("update = %+v", res)
	}

	if res := svc.UpdatePreferences(user, UpdatePreferencesRequest{Theme: "sepia"}); res.Error == nil || res.Code != 400 {
		t.Fatalf("invalid theme = %+v", res)
	}
}

func TestSiteReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"maintenance": false}`), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := NewService(repository.IRepository{}, &config.SiteConfig{}, path)
	if svc.Site().Maintenance {
		t.Fatal("maintenance should start off")
	}

	if err := os.WriteFile(path, []byte(`{"maintenance": true, "message": "Upgrading", "telegramLink": "https://t.me/basseinpay"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if res := svc.Reload(); res.Error != nil {
		t.Fatal(res.Error)
	}
	site := svc.Site()
	if !site.Maintenance || site.Message != "Upgrading" || site.TelegramLink != "https://t.me/basseinpay" {
		t.Fatalf("site = %+v", site)
	}

	if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
		t.Fatal(err)
	}
	if res := svc.Reload(); res.Error == nil {
		t.Fatal("expected reload error")
	}
	if !svc.Site().Maintenance {
		t.Fatal("failed reload must keep the current document")
	}
}
