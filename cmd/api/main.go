package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	ai "github.com/Baru2006/EasyRecharge-MM/internal/pkg/ai-connector"
	database "github.com/Baru2006/EasyRecharge-MM/internal/pkg/db"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/events"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/metrics"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/pricing"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/rabbitmq"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/redis"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/storage"
	s3aws "github.com/Baru2006/EasyRecharge-MM/internal/pkg/storage/s3"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/submitter"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/validation"
	serverApp "github.com/Baru2006/EasyRecharge-MM/internal/server"

	"github.com/gin-gonic/gin"
)

// @title           BasseinPay API
// @version         1.0
// @description     Top-up ordering for SIM, game, SMM and P2P exchange orders

// @BasePath        /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	logger.Setup()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		cancel()
		return
	}

	// Setup RabbitMQ, only when it carries the order events
	var rabbit *rabbitmq.ConnectionManager
	if env.EventBroker == enum.BROKER_RABBITMQ {
		rabbit, err = setupRabbitMQ(ctx, env)
		if err != nil {
			logger.Error.Println("Error setting up RabbitMQ", err)
			cancel()
			return
		}
	}

	// Setup Database
	db, err := setupDB(env, redisClient)
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		cancel()
		return
	}

	if err := db.RunMigrations(); err != nil {
		logger.Error.Println("Error running migrations", err)
		cancel()
		return
	}

	publisher, err := events.NewPublisher(ctx, events.Config{
		Broker:       env.EventBroker,
		Topic:        env.OrderEventTopic,
		KafkaBrokers: env.KafkaBrokers,
	}, rabbit)
	if err != nil {
		logger.Error.Println("Error setting up event publisher", err)
		cancel()
		return
	}

	blob, err := storage.New(ctx, storage.Config{
		Driver: env.StorageDriver,
		TTL:    env.ReceiptTTL,
		Bucket: env.AWSBucketName,
		S3: s3aws.S3Config{
			AWSRegion:          env.AWSRegion,
			AWSAccessKeyID:     env.AWSAccessKeyID,
			AWSSecretAccessKey: env.AWSSecretAccessKey,
		},
	}, redisClient)
	if err != nil {
		logger.Error.Println("Error setting up storage", err)
		cancel()
		return
	}

	backend, err := submitter.New(submitter.Config{
		Kind:    env.BackendKind,
		URL:     env.BackendURL,
		Token:   env.BackendToken,
		Timeout: env.BackendTimeout,
	})
	if err != nil {
		logger.Error.Println("Error setting up order backend", err)
		cancel()
		return
	}

	// Setup AI Client (optional)
	aiClient, err := setupAI(ctx, env)
	if err != nil {
		logger.Warning.Println("Slip reader disabled:", err)
	}

	// Setup Server
	setupServer(&config.SetupServerDto{
		Rds:       redisClient,
		Env:       env,
		Ctx:       &ctx,
		Cancel:    cancel,
		Db:        db,
		Wg:        &wg,
		Rb:        rabbit,
		Publisher: publisher,
		Blob:      blob,
		Ai:        aiClient,
		Submitter: backend,
		Site:      config.LoadSiteConfigOrDefault(env.SiteConfigPath),
		Prices:    loadPrices(env),
		Metrics:   metrics.NewServerMetrics("api"),
	})
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   env.DBSSLMode,
		Driver:    database.DriverEnum(env.DBDriver),
		Verbose:   env.AppEnv.Verbose(),
		Cache:     env.DBCache,
		CacheTime: env.DBCacheTime,
		Rds:       rds,
	})
}

func setupAI(ctx context.Context, env *config.Config) (*ai.AiClient, error) {
	client, err := ai.NewAiClient(ctx, &ai.Config{
		GeminiAPIKey: env.GeminiAPIKey,
		GeminiModel:  env.GeminiModel,
		CallTimeout:  env.GeminiTimeout,
	})
	if err == nil {
		logger.Info.Printf("Slip reader using %s", env.GeminiModel)
	}
	return client, err
}

func loadPrices(env *config.Config) *pricing.Table {
	if env.PriceTablePath == "" {
		return pricing.DefaultTable()
	}
	table, err := pricing.LoadTable(env.PriceTablePath)
	if err != nil {
		logger.Warning.Printf("Failed to load price table, using built-in prices: %v", err)
		return pricing.DefaultTable()
	}
	return table
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg

	defer func() {
		cancel()
		wg.Wait()
		_ = payload.Publisher.Close()
		if payload.Rb != nil {
			_ = payload.Rb.Close()
		}
		if payload.Ai != nil {
			_ = payload.Ai.Close()
		}
		_ = payload.Db.Close()
		if rds, ok := rds.(interface{ Close() error }); ok && rds != nil {
			_ = rds.Close()
		}
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	if !env.AppEnv.Verbose() {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.Default()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.AppPort),
		Handler: e,
	}

	if err := serverApp.Setup(e, payload); err != nil {
		logger.Error.Println("Failed to setup routes", err)
		return
	}
	if err := serverApp.InitWorker(payload); err != nil {
		logger.Error.Println("Failed to start workers", err)
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case <-sigChan:
	case <-(*ctx).Done():
	}
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	_ = server.Shutdown(shutdownCtx)
}
