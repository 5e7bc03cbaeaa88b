package config

import (
	"fmt"

	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/spf13/viper"
)

// SiteConfig is the maintenance document shown to every page.
type SiteConfig struct {
	Maintenance  bool   `json:"maintenance" mapstructure:"maintenance"`
	Message      string `json:"message" mapstructure:"message"`
	TelegramLink string `json:"telegramLink" mapstructure:"telegramLink"`
}

// LoadSiteConfig reads the site document (JSON, YAML or TOML, by extension).
func LoadSiteConfig(path string) (*SiteConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("maintenance", false)
	v.SetDefault("message", "")
	v.SetDefault("telegramLink", "")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read site config %s: %w", path, err)
	}

	var site SiteConfig
	if err := v.Unmarshal(&site); err != nil {
		return nil, fmt.Errorf("failed to decode site config %s: %w", path, err)
	}
	return &site, nil
}

// LoadSiteConfigOrDefault never fails: an unreadable document means the
// site is not in maintenance.
func LoadSiteConfigOrDefault(path string) *SiteConfig {
	site, err := LoadSiteConfig(path)
	if err != nil {
		logger.Warning.Printf("Failed to load site config, assuming no maintenance: %v", err)
		return &SiteConfig{}
	}
	return site
}
