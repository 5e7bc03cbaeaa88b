package database

import (
	"fmt"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/redis"
	"github.com/go-gorm/caches/v4"
	"gorm.io/gorm"
	_logger "gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Driver   DriverEnum
	// Verbose logs every statement through the app logger.
	Verbose bool

	// Cache enables the read-through query cache. Redis backs it when Rds
	// is set and CacheTime is positive; otherwise it is in-process.
	Cache     bool
	CacheTime time.Duration
	Rds       *redis.Client
}

type Database struct {
	*gorm.DB
	Config *Config
}

func Setup(cfg *Config) (*Database, error) {
	dialector, err := cfg.Driver.dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := _logger.Silent
	if cfg.Verbose {
		level = _logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: _logger.New(logger.Info, _logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if cfg.Cache {
		if err := db.Use(&caches.Caches{Conf: &caches.Config{
			Easer:  true,
			Cacher: newCacher(cfg),
		}}); err != nil {
			logger.Warning.Printf("query cache disabled: %v", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	switch cfg.Driver {
	case SQLITE:
		// single writer; a :memory: database lives in one connection
		sqlDB.SetMaxOpenConns(1)
	default:
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	return &Database{DB: db, Config: cfg}, nil
}

func newCacher(cfg *Config) caches.Cacher {
	if cfg.Rds != nil && cfg.CacheTime > 0 {
		return &redisCacher{rdb: cfg.Rds.Client, cacheTime: cfg.CacheTime}
	}
	return &memoryCacher{}
}

func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// IsCloseConnection reports whether the pool can no longer reach the database.
func (db *Database) IsCloseConnection() bool {
	sqlDB, err := db.DB.DB()
	if err != nil || sqlDB == nil {
		return true
	}
	return sqlDB.Ping() != nil
}
