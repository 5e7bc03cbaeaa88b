package settings

import (
	"net/http"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/validation"
)

func (s *Service) Site() config.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

func (s *Service) SiteConfig() *types.Response {
	return helper.ParseResponse(&types.Response{Data: s.Site()})
}

// Reload re-reads the site document. A failed read keeps the current one.
func (s *Service) Reload() *types.Response {
	if s.path == "" {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "No site config path configured"})
	}

	site, err := config.LoadSiteConfig(s.path)
	if err != nil {
		logger.Warning.Printf("Site config reload failed, keeping current: %v", err)
		return helper.ParseResponse(&types.Response{Code: http.StatusUnprocessableEntity, Message: "Failed to reload site config", Error: err})
	}

	s.mu.Lock()
	s.site = *site
	s.mu.Unlock()

	logger.Info.Printf("Site config reloaded (maintenance=%t)", site.Maintenance)
	return helper.ParseResponse(&types.Response{Data: *site})
}

func (s *Service) Preferences(user types.UserWithAuth) *types.Response {
	prefs, err := s.rp.Preference.Get(user.ID)
	if err != nil {
		logger.Error.Printf("Failed to read preferences for %s: %v", user.ID, err)
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to read preferences", Error: err})
	}
	return helper.ParseResponse(&types.Response{Data: prefs})
}

func (s *Service) UpdatePreferences(user types.UserWithAuth, req UpdatePreferencesRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Error: err})
	}

	if err := s.rp.Preference.SetTheme(user.ID, req.Theme); err != nil {
		logger.Error.Printf("Failed to save theme for %s: %v", user.ID, err)
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to save preferences", Error: err})
	}

	return s.Preferences(user)
}
