package pricing

import (
	"strings"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/samber/lo"
)

// PriceEntry is one priced item. Reseller == 0 means the item has no
// reseller tier and resellers pay the customer price.
type PriceEntry struct {
	Category enum.Category `json:"category"`
	Key      string        `json:"key"`
	Group    string        `json:"group,omitempty"`
	Label    string        `json:"label"`
	Customer int64         `json:"customer"`
	Reseller int64         `json:"reseller,omitempty"`
	PerUnit  bool          `json:"per_unit,omitempty"`
}

func (e PriceEntry) PriceFor(role enum.Role) int64 {
	if role == enum.RESELLER && e.Reseller > 0 {
		return e.Reseller
	}
	return e.Customer
}

// Table is built once and never mutated afterwards, so it is safe to share
// between goroutines.
type Table struct {
	entries map[enum.Category]map[string]PriceEntry
	order   map[enum.Category][]string
}

func NewTable(entries ...PriceEntry) *Table {
	t := &Table{
		entries: make(map[enum.Category]map[string]PriceEntry),
		order:   make(map[enum.Category][]string),
	}
	for _, e := range entries {
		t.add(e)
	}
	return t
}

func (t *Table) add(e PriceEntry) {
	if e.Category == enum.SIM && e.Group != "" && !strings.Contains(e.Key, SimKeySeparator) {
		e.Key = SimKey(e.Group, e.Key)
	}
	if e.Label == "" {
		e.Label = e.Key
	}
	if _, ok := t.entries[e.Category]; !ok {
		t.entries[e.Category] = make(map[string]PriceEntry)
	}
	if _, exists := t.entries[e.Category][e.Key]; !exists {
		t.order[e.Category] = append(t.order[e.Category], e.Key)
	}
	t.entries[e.Category][e.Key] = e
}

const SimKeySeparator = "/"

// SimKey addresses a SIM package: SimKey("MPT", "2GB") == "MPT/2GB".
func SimKey(provider, pkg string) string {
	return provider + SimKeySeparator + pkg
}

// Lookup never fails on unknown input; ok reports whether the item exists.
func (t *Table) Lookup(category enum.Category, key string) (PriceEntry, bool) {
	if t == nil {
		return PriceEntry{}, false
	}
	items, ok := t.entries[category]
	if !ok {
		return PriceEntry{}, false
	}
	e, ok := items[key]
	return e, ok
}

// PriceFor returns the tier price, or 0 for anything unknown. Callers must
// read 0 as "unpriced", not "free".
func (t *Table) PriceFor(category enum.Category, key string, role enum.Role) int64 {
	e, ok := t.Lookup(category, key)
	if !ok {
		return 0
	}
	return e.PriceFor(role)
}

// Entries lists a category in insertion order.
func (t *Table) Entries(category enum.Category) []PriceEntry {
	if t == nil {
		return nil
	}
	return lo.Map(t.order[category], func(key string, _ int) PriceEntry {
		return t.entries[category][key]
	})
}

// Providers lists SIM providers in first-seen order.
func (t *Table) Providers() []string {
	return lo.Uniq(lo.Map(t.Entries(enum.SIM), func(e PriceEntry, _ int) string {
		return e.Group
	}))
}

// Packages lists the SIM packages of one provider; unknown provider gives
// an empty list.
func (t *Table) Packages(provider string) []PriceEntry {
	return lo.Filter(t.Entries(enum.SIM), func(e PriceEntry, _ int) bool {
		return e.Group == provider
	})
}

// Catalog groups every entry by category for the services listing.
func (t *Table) Catalog() map[enum.Category][]PriceEntry {
	catalog := make(map[enum.Category][]PriceEntry, len(t.order))
	for category := range t.order {
		catalog[category] = t.Entries(category)
	}
	return catalog
}
