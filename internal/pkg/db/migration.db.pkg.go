package database

import (
	"fmt"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/models"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/samber/lo"
)

// schema lists the tables owned by the service, parents first.
func schema() []any {
	return []any{
		&models.Order{},
	}
}

func (db *Database) RunMigrations() error {
	for _, model := range schema() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
		logger.Debug.Printf("migrated %T", model)
	}
	logger.Info.Printf("Database schema up to date (%s, %d tables)", db.Config.Driver, len(schema()))
	return nil
}

// PendingTables names the models whose table does not exist yet.
func (db *Database) PendingTables() []string {
	m := db.Migrator()
	return lo.FilterMap(schema(), func(model any, _ int) (string, bool) {
		return fmt.Sprintf("%T", model), !m.HasTable(model)
	})
}
