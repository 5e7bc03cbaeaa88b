package config

import (
	"context"
	"sync"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	ai "github.com/Baru2006/EasyRecharge-MM/internal/pkg/ai-connector"
	database "github.com/Baru2006/EasyRecharge-MM/internal/pkg/db"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/events"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/metrics"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/pricing"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/rabbitmq"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/redis"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/storage"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/submitter"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv      enum.EnvEnum `env:"APP_ENV" envDefault:"development"`
	AppPort     int          `env:"APP_PORT" envDefault:"8080"`
	AppBaseURL  string       `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	AppTimezone string       `env:"APP_TIMEZONE" envDefault:"Asia/Yangon"`
	BrandName   string       `env:"BRAND_NAME" envDefault:"BasseinPay"`
	Currency    string       `env:"CURRENCY" envDefault:"MMK"`
	CorsOrigins []string     `env:"CORS_ORIGINS" envDefault:"*"`

	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser     string `env:"REDIS_USER" envDefault:"default"`
	RedisPass     string `env:"REDIS_PASS" envDefault:""`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	RabbitHost string `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort int    `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser string `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass string `env:"RABBIT_PASS" envDefault:"guest"`

	KafkaBrokers    []string        `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	EventBroker     enum.BrokerEnum `env:"EVENT_BROKER" envDefault:"rabbitmq"`
	OrderEventTopic string          `env:"ORDER_EVENT_TOPIC" envDefault:"order.submitted"`

	DBDriver    string        `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost      string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort      int           `env:"DB_PORT" envDefault:"5432"`
	DBUser      string        `env:"DB_USER" envDefault:"postgres"`
	DBPass      string        `env:"DB_PASS" envDefault:""`
	DBName      string        `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode   string        `env:"DB_SSL_MODE" envDefault:"disable"`
	DBCache     bool          `env:"DB_CACHE" envDefault:"false"`
	DBCacheTime time.Duration `env:"DB_CACHE_TIME" envDefault:"5m"`

	GeminiAPIKey  string        `env:"GEMINI_API_KEY" envDefault:""`
	GeminiModel   string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	GeminiTimeout time.Duration `env:"GEMINI_TIMEOUT" envDefault:"60s"`

	StorageDriver      enum.StorageEnum `env:"STORAGE_DRIVER" envDefault:"redis"`
	AWSAccessKeyID     string           `env:"AWS_ACCESS_KEY_ID" envDefault:""`
	AWSSecretAccessKey string           `env:"AWS_SECRET_ACCESS_KEY" envDefault:""`
	AWSRegion          string           `env:"AWS_REGION" envDefault:"ap-southeast-1"`
	AWSBucketName      string           `env:"AWS_BUCKET_NAME" envDefault:""`
	ReceiptTTL         time.Duration    `env:"RECEIPT_TTL" envDefault:"72h"`

	BackendKind    enum.SubmitterEnum `env:"BACKEND_KIND" envDefault:"sheet"`
	BackendURL     string             `env:"BACKEND_URL" envDefault:""`
	BackendToken   string             `env:"BACKEND_TOKEN" envDefault:""`
	BackendTimeout time.Duration      `env:"BACKEND_TIMEOUT" envDefault:"15s"`

	SlipMaxDimension  int      `env:"SLIP_MAX_DIMENSION" envDefault:"1280"`
	SlipMaxBytes      int64    `env:"SLIP_MAX_BYTES" envDefault:"5242880"`
	SlipQuality       int      `env:"SLIP_QUALITY" envDefault:"80"`
	SlipOptionalTypes []string `env:"SLIP_OPTIONAL_TYPES" envDefault:""`

	P2PFeePercent float64        `env:"P2P_FEE_PERCENT" envDefault:"1.5"`
	P2PMinFee     int64          `env:"P2P_MIN_FEE" envDefault:"50"`
	P2PFeePolicy  enum.FeePolicy `env:"P2P_FEE_POLICY" envDefault:"added"`

	PriceTablePath string `env:"PRICE_TABLE_PATH" envDefault:""`
	SiteConfigPath string `env:"SITE_CONFIG_PATH" envDefault:"config.json"`
	RedirectPath   string `env:"ORDER_REDIRECT_PATH" envDefault:"/telegram_group"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"2"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx       *context.Context
	Cancel    context.CancelFunc
	Wg        *sync.WaitGroup
	Env       *Config
	Site      *SiteConfig
	Prices    *pricing.Table
	Db        *database.Database
	Rds       redis.IRedis
	Rb        *rabbitmq.ConnectionManager
	Publisher events.Publisher
	Blob      storage.BlobStore
	Ai        *ai.AiClient
	Submitter submitter.Submitter
	Metrics   *metrics.ServerMetrics
}
