package settings

import (
	"sync"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/repository"
)

type Service struct {
	rp   repository.IRepository
	mu   sync.RWMutex
	site config.SiteConfig
	path string
}

type IService interface {
	Site() config.SiteConfig
	SiteConfig() *types.Response
	Reload() *types.Response
	Preferences(user types.UserWithAuth) *types.Response
	UpdatePreferences(user types.UserWithAuth, req UpdatePreferencesRequest) *types.Response
}

// NewService serves site as loaded at startup; path is only read again on
// an explicit Reload.
func NewService(rp repository.IRepository, site *config.SiteConfig, path string) IService {
	s := &Service{rp: rp, path: path}
	if site != nil {
		s.site = *site
	}
	return s
}

type UpdatePreferencesRequest struct {
	Theme enum.Theme `json:"theme" validate:"required,enum"`
}
