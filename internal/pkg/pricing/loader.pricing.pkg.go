package pricing

import (
	"fmt"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/spf13/viper"
)

type fileEntry struct {
	Category enum.Category `mapstructure:"category"`
	Group    string        `mapstructure:"group"`
	Key      string        `mapstructure:"key"`
	Label    string        `mapstructure:"label"`
	Customer int64         `mapstructure:"customer"`
	Reseller int64         `mapstructure:"reseller"`
	PerUnit  bool          `mapstructure:"per_unit"`
}

type fileTable struct {
	Entries []fileEntry `mapstructure:"entries"`
}

// LoadTable reads a price list file (JSON, YAML or TOML). An empty path
// returns the built-in table.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read price table %s: %w", path, err)
	}

	var raw fileTable
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode price table %s: %w", path, err)
	}

	entries := make([]PriceEntry, 0, len(raw.Entries))
	for i, e := range raw.Entries {
		if !e.Category.IsValid() {
			return nil, fmt.Errorf("price table entry %d: unknown category %q", i, e.Category)
		}
		if e.Key == "" {
			return nil, fmt.Errorf("price table entry %d: key is required", i)
		}
		if e.Category == enum.SIM && e.Group == "" {
			return nil, fmt.Errorf("price table entry %d: SIM entries need a provider group", i)
		}
		if e.Customer < 0 || e.Reseller < 0 {
			return nil, fmt.Errorf("price table entry %d: prices must not be negative", i)
		}
		entries = append(entries, PriceEntry{
			Category: e.Category,
			Key:      e.Key,
			Group:    e.Group,
			Label:    e.Label,
			Customer: e.Customer,
			Reseller: e.Reseller,
			PerUnit:  e.PerUnit || e.Category == enum.SMM,
		})
	}

	return NewTable(entries...), nil
}
