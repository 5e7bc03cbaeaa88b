package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ItemList stores the receipt rows of an order as one JSON column.
type ItemList []types.OrderItem

func (ItemList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "JSON"
	}
	return "TEXT"
}

func (l ItemList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]types.OrderItem(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ItemList) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ItemList", value)
	}

	var items []types.OrderItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("invalid order items: %w", err)
	}
	*l = items
	return nil
}
