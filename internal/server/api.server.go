package serverApp

import (
	"net/http"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/imaging"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/middleware"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/pricing"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/receipt"
	"github.com/Baru2006/EasyRecharge-MM/internal/repository"
	orderRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/order"
	preferenceRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/preference"
	"github.com/samber/lo"

	orderHandler "github.com/Baru2006/EasyRecharge-MM/internal/handler/order"
	pricingHandler "github.com/Baru2006/EasyRecharge-MM/internal/handler/pricing"
	settingsHandler "github.com/Baru2006/EasyRecharge-MM/internal/handler/settings"
	orderService "github.com/Baru2006/EasyRecharge-MM/internal/service/order"
	pricingService "github.com/Baru2006/EasyRecharge-MM/internal/service/pricing"
	settingsService "github.com/Baru2006/EasyRecharge-MM/internal/service/settings"

	"github.com/gin-gonic/gin"
)

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, payload *config.SetupServerDto) error {
	InitMiddleware(engine, payload)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"service": health(payload),
		})
	})

	if payload.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(payload.Metrics.Handler()))
	}

	e := engine.Group(BasePath(), middleware.OptionalAuth())
	if err := InitRoutes(e, payload); err != nil {
		return err
	}

	logRuntime(payload)
	return nil
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine, payload *config.SetupServerDto) {
	e.Use(middleware.RequestInit())
	e.Use(middleware.CorsMiddleware(payload.Env.CorsOrigins))
	e.Use(middleware.ResponseInit())
	if payload.Metrics != nil {
		e.Use(middleware.Metrics(payload.Metrics))
	}
}

func InitRoutes(e *gin.RouterGroup, payload *config.SetupServerDto) error {
	ctx := *payload.Ctx
	env := payload.Env

	// setup repo
	rp := repository.IRepository{
		Order:      orderRepo.NewRepo(payload.Db),
		Preference: preferenceRepo.NewRepo(payload.Rds),
	}

	calculator := pricing.NewCalculator(payload.Prices, pricing.FeeConfig{
		Percent: env.P2PFeePercent,
		MinFee:  env.P2PMinFee,
		Policy:  env.P2PFeePolicy,
	})

	composer, err := receipt.NewComposer(env.BrandName)
	if err != nil {
		return err
	}

	// === Settings ===
	SettingsService := settingsService.NewService(rp, payload.Site, env.SiteConfigPath)
	SettingsHandler := settingsHandler.NewHandler(ctx, SettingsService)
	SettingsHandler.NewRoutes(e)

	limiter := middleware.NewClientRateLimiter(ctx, middleware.RateLimiterConfig{
		RequestsPerSecond: env.RateLimitRPS,
		BurstSize:         env.RateLimitBurst,
	})
	// orders and quotes are refused while the site is in maintenance
	gate := []gin.HandlerFunc{
		middleware.Maintenance(SettingsService.Site),
		limiter.Middleware(),
	}

	// === Pricing ===
	PricingService := pricingService.NewService(calculator, env.Currency)
	PricingHandler := pricingHandler.NewHandler(ctx, PricingService, gate...)
	PricingHandler.NewRoutes(e)

	// === Order ===
	OrderService := orderService.NewService(ctx, rp, orderService.Dependencies{
		Calculator: calculator,
		Preprocessor: imaging.NewPreprocessor(imaging.Options{
			MaxDimension: env.SlipMaxDimension,
			MaxBytes:     env.SlipMaxBytes,
			Quality:      env.SlipQuality,
		}),
		Composer:  composer,
		Blob:      payload.Blob,
		Submitter: payload.Submitter,
		Publisher: payload.Publisher,
		Metrics:   payload.Metrics,
	}, orderService.Options{
		Currency:    env.Currency,
		Location:    env.Location(),
		Redirect:    env.RedirectPath,
		ReceiptPath: BasePath() + "/v1/orders",
		SlipOptional: lo.FilterMap(env.SlipOptionalTypes, func(t string, _ int) (enum.Category, bool) {
			category := enum.Category(t)
			if !category.IsValid() {
				logger.Warning.Printf("Ignoring unknown slip-optional order type %q", t)
			}
			return category, category.IsValid()
		}),
	})
	OrderHandler := orderHandler.NewHandler(ctx, OrderService, env.SlipMaxBytes, gate...)
	OrderHandler.NewRoutes(e)

	return nil
}

func health(payload *config.SetupServerDto) gin.H {
	rabbitmqHealth := "disabled"
	redisHealth := "unhealthy"
	databaseHealth := "unhealthy"

	if db := payload.Db; db != nil && !db.IsCloseConnection() {
		databaseHealth = "healthy"
	}

	if rb := payload.Rb; rb != nil {
		rabbitmqHealth = "unhealthy"
		if !rb.IsClosed() {
			rabbitmqHealth = "healthy"
		}
	}

	if rds, ok := payload.Rds.(interface{ Ping() error }); ok && rds != nil {
		if err := rds.Ping(); err == nil {
			redisHealth = "healthy"
		}
	}

	return gin.H{
		"rabbitmq": gin.H{"status": rabbitmqHealth},
		"redis":    gin.H{"status": redisHealth},
		"database": gin.H{"status": databaseHealth},
	}
}

func logRuntime(payload *config.SetupServerDto) {
	env := payload.Env
	logger.Info.Printf("Brand %s, currency %s, timezone %s", env.BrandName, env.Currency, env.Location())
	logger.Info.Printf("Order backend: %s, event broker: %s, storage: %s", env.BackendKind, env.EventBroker, env.StorageDriver)
	if site := payload.Site; site != nil && site.Maintenance {
		logger.Warning.Printf("Site starts in maintenance mode: %s", site.Message)
	}
	if !payload.Ai.Enabled() {
		logger.Info.Println("Slip reader not configured, audits will be skipped")
	}
}
