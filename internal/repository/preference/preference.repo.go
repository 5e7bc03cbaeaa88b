package preference

import (
	"encoding/json"
	"fmt"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/redis"
)

const keyPrefix = "basseinpay"

const (
	FieldLastSimPhone = "last_sim_phone"
	FieldLastSmmLink  = "last_smm_link"
	FieldLastOrder    = "last_order"
	FieldTheme        = "theme"
)

// Preferences are the per-visitor values the order pages prefill from.
type Preferences struct {
	Theme        enum.Theme `json:"theme"`
	LastSimPhone string     `json:"lastSimPhone,omitempty"`
	LastSmmLink  string     `json:"lastSmmLink,omitempty"`
}

type IRepository interface {
	Get(userID string) (*Preferences, error)
	SetTheme(userID string, theme enum.Theme) error
	SetLastSimPhone(userID, phone string) error
	SetLastSmmLink(userID, link string) error
	SetLastOrder(userID string, order types.LastOrder) error
	GetLastOrder(userID string) (*types.LastOrder, error)
}

// Repository keeps preferences without expiry; last writer wins.
type Repository struct {
	redis redis.IRedis
}

func NewRepo(redis redis.IRedis) IRepository {
	return &Repository{redis: redis}
}

func Key(userID, field string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, field)
}

func (r *Repository) Get(userID string) (*Preferences, error) {
	prefs := &Preferences{Theme: enum.LIGHT}

	theme, err := r.redis.Get(Key(userID, FieldTheme))
	if err != nil {
		return nil, err
	}
	if t := enum.Theme(theme); t.IsValid() {
		prefs.Theme = t
	}

	if prefs.LastSimPhone, err = r.redis.Get(Key(userID, FieldLastSimPhone)); err != nil {
		return nil, err
	}
	if prefs.LastSmmLink, err = r.redis.Get(Key(userID, FieldLastSmmLink)); err != nil {
		return nil, err
	}

	return prefs, nil
}

func (r *Repository) SetTheme(userID string, theme enum.Theme) error {
	return r.redis.Set(Key(userID, FieldTheme), string(theme), 0)
}

func (r *Repository) SetLastSimPhone(userID, phone string) error {
	return r.redis.Set(Key(userID, FieldLastSimPhone), phone, 0)
}

func (r *Repository) SetLastSmmLink(userID, link string) error {
	return r.redis.Set(Key(userID, FieldLastSmmLink), link, 0)
}

func (r *Repository) SetLastOrder(userID string, order types.LastOrder) error {
	return r.redis.Set(Key(userID, FieldLastOrder), order, 0)
}

// GetLastOrder returns nil when the visitor has not ordered yet.
func (r *Repository) GetLastOrder(userID string) (*types.LastOrder, error) {
	raw, err := r.redis.Get(Key(userID, FieldLastOrder))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var order types.LastOrder
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil, fmt.Errorf("failed to decode last order: %w", err)
	}
	return &order, nil
}
