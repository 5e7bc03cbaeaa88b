package serverApp

import (
	"fmt"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/events"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/repository"
	orderRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/order"
	preferenceRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/preference"
	auditService "github.com/Baru2006/EasyRecharge-MM/internal/service/audit"

	"github.com/panjf2000/ants"
)

const workerPoolSize = 4

// InitWorker starts the slip audit consumer. It returns once the consumer
// is running; the consumer stops when the payload context is cancelled.
func InitWorker(payload *config.SetupServerDto) error {
	env := payload.Env
	if env.EventBroker == enum.BROKER_NONE {
		logger.Info.Println("Event broker disabled, slip audit worker not started")
		return nil
	}

	ctx := *payload.Ctx
	rp := repository.IRepository{
		Order:      orderRepo.NewRepo(payload.Db),
		Preference: preferenceRepo.NewRepo(payload.Rds),
	}
	AuditService := auditService.NewService(ctx, rp, payload.Blob, payload.Ai, payload.Metrics)

	consumer, err := events.NewConsumer(ctx, events.Config{
		Broker:       env.EventBroker,
		Topic:        env.OrderEventTopic,
		KafkaBrokers: env.KafkaBrokers,
	}, payload.Rb, AuditService.HandleOrderSubmitted)
	if err != nil {
		return fmt.Errorf("failed to create audit consumer: %w", err)
	}

	pool, err := ants.NewPool(workerPoolSize)
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}

	payload.Wg.Add(1)
	err = pool.Submit(func() {
		defer payload.Wg.Done()
		defer pool.Release()

		if err := consumer.Start(); err != nil {
			logger.Error.Printf("Failed to start slip audit worker: %v\n", err)
			return
		}
		logger.Info.Printf("Slip audit worker consuming %s from %s", env.OrderEventTopic, env.EventBroker)

		<-ctx.Done()
		if err := consumer.Stop(); err != nil {
			logger.Error.Printf("Failed to stop slip audit worker: %v\n", err)
		}
	})
	if err != nil {
		payload.Wg.Done()
		pool.Release()
		return fmt.Errorf("failed to submit task to pool: %w", err)
	}

	return nil
}
