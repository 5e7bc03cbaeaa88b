package preference

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
)

// memoryRedis mimics the Set encoding of redis.Client: strings raw,
// anything else as JSON.
type memoryRedis struct {
	data map[string]string
}

func (m *memoryRedis) Set(key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		m.data[key] = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		m.data[key] = string(b)
	}
	return nil
}

func (m *memoryRedis) Get(key string) (string, error) { return m.data[key], nil }
func (m *memoryRedis) SetBytes(key string, value []byte, _ time.Duration) error {
	m.data[key] = string(value)
	return nil
}
func (m *memoryRedis) GetBytes(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}
func (m *memoryRedis) Del(key string) error { delete(m.data, key); return nil }
func (m *memoryRedis) Expire(string, time.Duration) error { return nil }
func (m *memoryRedis) Close() error { return nil }

func TestPreferences(t *testing.T) {
	rds := &memoryRedis{data: map[string]string{}}
	repo := NewRepo(rds)

	prefs, err := repo.Get("u1")
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Theme != enum.LIGHT || prefs.LastSimPhone != "" {
		t.Fatalf("defaults = %+v", prefs)
	}

	if err := repo.SetTheme("u1", enum.DARK); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetLastSimPhone("u1", "09123456789"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetLastSmmLink("u1", "https://facebook.com/page"); err != nil {
		t.Fatal(err)
	}

	if rds.data["basseinpay:u1:last_sim_phone"] != "09123456789" {
		t.Fatalf("stored keys = %v", rds.data)
	}

	prefs, _ = repo.Get("u1")
	if prefs.Theme != enum.DARK || prefs.LastSimPhone != "09123456789" || prefs.LastSmmLink != "https://facebook.com/page" {
		t.Fatalf("prefs = %+v", prefs)
	}

	other, _ := repo.Get("u2")
	if other.LastSimPhone != "" {
		t.Fatalf("preferences leaked across users: %+v", other)
	}
}

func TestLastOrder(t *testing.T) {
	repo := NewRepo(&memoryRedis{data: map[string]string{}})

	got, err := repo.GetLastOrder("u1")
	if err != nil || got != nil {
		t.Fatalf("empty = %v, %v", got, err)
	}

	first := types.LastOrder{OrderID: "BP-1", Type: enum.SIM_RECHARGE, Total: 2400, TotalDisplay: "2,400 MMK"}
	second := types.LastOrder{OrderID: "BP-2", Type: enum.P2P_EXCHANGE, Total: 10150, TotalDisplay: "10,150 MMK"}
	_ = repo.SetLastOrder("u1", first)
	_ = repo.SetLastOrder("u1", second)

	got, err = repo.GetLastOrder("u1")
	if err != nil {
		t.Fatal(err)
	}
	if got.OrderID != "BP-2" || got.TotalDisplay != "10,150 MMK" {
		t.Fatalf("last order = %+v", got)
	}
}
