package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("P2P_FEE_PERCENT", "2.5")
	t.Setenv("P2P_FEE_POLICY", "deducted")
	t.Setenv("SLIP_OPTIONAL_TYPES", "p2p")
	t.Setenv("DB_CACHE", "true")

	cfg, err := GetEnv()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.AppEnv != enum.STAGING || cfg.AppPort != 9090 {
		t.Fatalf("app = %s:%d", cfg.AppEnv, cfg.AppPort)
	}
	if len(cfg.CorsOrigins) != 2 || cfg.CorsOrigins[1] != "https://b.example" {
		t.Fatalf("cors = %q", cfg.CorsOrigins)
	}
	if cfg.BackendTimeout != 3*time.Second {
		t.Fatalf("timeout = %s", cfg.BackendTimeout)
	}
	if cfg.P2PFeePercent != 2.5 || cfg.P2PFeePolicy != enum.FEE_DEDUCTED {
		t.Fatalf("fee = %v %s", cfg.P2PFeePercent, cfg.P2PFeePolicy)
	}
	if len(cfg.SlipOptionalTypes) != 1 || cfg.SlipOptionalTypes[0] != "p2p" {
		t.Fatalf("slip optional = %q", cfg.SlipOptionalTypes)
	}
	if !cfg.DBCache {
		t.Fatal("db cache not parsed")
	}
}

func TestGetEnvRejectsUnknownEnums(t *testing.T) {
	cases := map[string]string{
		"APP_ENV":        "prod",
		"BACKEND_KIND":   "webhook",
		"EVENT_BROKER":   "nats",
		"STORAGE_DRIVER": "gcs",
		"P2P_FEE_POLICY": "split",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := GetEnv(); err == nil {
				t.Fatalf("%s=%s accepted", key, value)
			}
		})
	}
}

func TestGetEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("APP_PORT", "eighty")
	if _, err := GetEnv(); err == nil {
		t.Fatal("non-numeric port accepted")
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{AppTimezone: "Mars/Olympus"}
	if cfg.Location() != time.UTC {
		t.Fatalf("location = %s", cfg.Location())
	}
}

func TestLoadSiteConfig(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(jsonPath, []byte(`{"maintenance": true, "message": "Upgrading", "telegramLink": "https://t.me/basseinpay"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	site, err := LoadSiteConfig(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !site.Maintenance || site.Message != "Upgrading" || site.TelegramLink != "https://t.me/basseinpay" {
		t.Fatalf("site = %+v", site)
	}

	yamlPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(yamlPath, []byte("message: hello\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	site, err = LoadSiteConfig(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if site.Maintenance || site.Message != "hello" {
		t.Fatalf("yaml site = %+v", site)
	}
}

func TestLoadSiteConfigOrDefault(t *testing.T) {
	site := LoadSiteConfigOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	if site == nil || site.Maintenance {
		t.Fatalf("site = %+v", site)
	}
}
