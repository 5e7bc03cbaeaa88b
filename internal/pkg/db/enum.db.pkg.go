package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DirectionEnum orders order history by creation time.
type DirectionEnum string

const (
	ASC  DirectionEnum = "asc"
	DESC DirectionEnum = "desc"
)

// ParseDirection is case-insensitive and falls back to newest first.
func ParseDirection(s string) DirectionEnum {
	switch d := DirectionEnum(strings.ToLower(strings.TrimSpace(s))); d {
	case ASC, DESC:
		return d
	}
	return DESC
}

func (e DirectionEnum) IsValid() bool {
	return e == ASC || e == DESC
}

func (e DirectionEnum) OrderBy(column string) string {
	if e == ASC {
		return column + " asc"
	}
	return column + " desc"
}

type DriverEnum string

const (
	POSTGRES DriverEnum = "postgres"
	MYSQL    DriverEnum = "mysql"
	SQLITE   DriverEnum = "sqlite"
)

func (e DriverEnum) IsValid() bool {
	switch e {
	case POSTGRES, MYSQL, SQLITE:
		return true
	}
	return false
}

// dialector builds the gorm dialector for cfg. For sqlite, Database is a
// file path or ":memory:".
func (e DriverEnum) dialector(cfg *Config) (gorm.Dialector, error) {
	switch e {
	case POSTGRES:
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return postgres.Open(fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Database, cfg.Port, sslMode,
		)), nil
	case MYSQL:
		return mysql.Open(fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		)), nil
	case SQLITE:
		return sqlite.Open(cfg.Database), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q (supported: postgres, mysql, sqlite)", e)
}
