package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/kafka"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	_kafka "github.com/segmentio/kafka-go"
)

const (
	OrderSubmittedPattern = "order.submitted"
	DefaultExchange       = "basseinpay.events"
	AuditQueue            = "basseinpay.slip-audit"
	AuditGroup            = "basseinpay-slip-audit"
)

// OrderSubmitted is emitted after the backend accepted an order.
type OrderSubmitted struct {
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	OrderType     string    `json:"orderType"`
	Total         int64     `json:"total"`
	TransactionID string    `json:"transactionId,omitempty"`
	SlipKey       string    `json:"slipKey,omitempty"`
	ReceiptKey    string    `json:"receiptKey"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

type Publisher interface {
	PublishOrderSubmitted(ctx context.Context, evt OrderSubmitted) error
	Close() error
}

type Handler func(ctx context.Context, evt OrderSubmitted) error

// Consumer delivers OrderSubmitted events to a Handler until stopped.
type Consumer interface {
	Start() error
	Stop() error
}

type Config struct {
	Broker       enum.BrokerEnum
	Topic        string
	Exchange     string
	KafkaBrokers []string
}

func (c Config) topic() string {
	if c.Topic == "" {
		return OrderSubmittedPattern
	}
	return c.Topic
}

func (c Config) exchange() string {
	if c.Exchange == "" {
		return DefaultExchange
	}
	return c.Exchange
}

func NewPublisher(ctx context.Context, cfg Config, rb *rabbitmq.ConnectionManager) (Publisher, error) {
	switch cfg.Broker {
	case enum.BROKER_RABBITMQ:
		pub, err := rabbitmq.NewPublisher(ctx, rb)
		if err != nil {
			return nil, err
		}
		return &rabbitPublisher{pub: pub, exchange: cfg.exchange(), routingKey: cfg.topic()}, nil
	case enum.BROKER_KAFKA:
		client := kafka.NewClient(cfg.KafkaBrokers)
		if !client.Enabled() {
			return nil, kafka.ErrDisabled
		}
		return &kafkaPublisher{writer: client.NewWriter(cfg.topic())}, nil
	case enum.BROKER_NONE, "":
		return NoopPublisher{}, nil
	}
	return nil, fmt.Errorf("unsupported event broker: %s", cfg.Broker)
}

func NewConsumer(ctx context.Context, cfg Config, rb *rabbitmq.ConnectionManager, handler Handler) (Consumer, error) {
	switch cfg.Broker {
	case enum.BROKER_RABBITMQ:
		opts := rabbitmq.DefaultSubscribeOptions(AuditQueue)
		opts.Exchange = cfg.exchange()
		opts.RoutingKey = cfg.topic()
		sub, err := rabbitmq.NewSubscriber(ctx, rb, rabbitHandler(handler), opts)
		if err != nil {
			return nil, err
		}
		return sub, nil
	case enum.BROKER_KAFKA:
		client := kafka.NewClient(cfg.KafkaBrokers)
		if !client.Enabled() {
			return nil, kafka.ErrDisabled
		}
		ctx, cancel := context.WithCancel(ctx)
		return &kafkaConsumer{
			reader:  client.NewReader(cfg.topic(), AuditGroup),
			handler: handler,
			ctx:     ctx,
			cancel:  cancel,
		}, nil
	}
	return nil, fmt.Errorf("no consumer for event broker %q", cfg.Broker)
}

/*----------- rabbitmq -----------*/

type rabbitPublisher struct {
	pub        *rabbitmq.Publisher
	exchange   string
	routingKey string
}

func (p *rabbitPublisher) PublishOrderSubmitted(ctx context.Context, evt OrderSubmitted) error {
	if err := p.pub.DeclareExchange(p.exchange, "topic"); err != nil {
		return err
	}
	msg, err := rabbitmq.NewPubsubMessage(OrderSubmittedPattern, evt)
	if err != nil {
		return err
	}
	return p.pub.Publish(ctx, p.exchange, p.routingKey, msg)
}

func (p *rabbitPublisher) Close() error {
	return p.pub.Close()
}

func rabbitHandler(handler Handler) rabbitmq.MessageHandler {
	return func(ctx context.Context, msg *amqp.Delivery) error {
		env, err := rabbitmq.DecodePubsub(msg.Body)
		if err != nil {
			return err
		}
		if env.Pattern != OrderSubmittedPattern {
			logger.Debug.Printf("ignoring event %s", env.Pattern)
			return nil
		}
		var evt OrderSubmitted
		if err := json.Unmarshal(env.Data, &evt); err != nil {
			return fmt.Errorf("invalid %s payload: %w", env.Pattern, err)
		}
		return handler(ctx, evt)
	}
}

/*----------- kafka -----------*/

type kafkaPublisher struct {
	writer *_kafka.Writer
}

func (p *kafkaPublisher) PublishOrderSubmitted(ctx context.Context, evt OrderSubmitted) error {
	return kafka.PublishJSON(ctx, p.writer, evt.OrderID, evt)
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type kafkaConsumer struct {
	reader  *_kafka.Reader
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

func (c *kafkaConsumer) Start() error {
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		kafka.Consume(c.ctx, c.reader, func(ctx context.Context, msg _kafka.Message) error {
			var evt OrderSubmitted
			if err := json.Unmarshal(msg.Value, &evt); err != nil {
				return fmt.Errorf("invalid event: %w", err)
			}
			return c.handler(ctx, evt)
		})
	}()
	return nil
}

func (c *kafkaConsumer) Stop() error {
	c.cancel()
	if c.done != nil {
		<-c.done
	}
	return c.reader.Close()
}

/*----------- none -----------*/

// NoopPublisher drops events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderSubmitted(_ context.Context, evt OrderSubmitted) error {
	logger.Debug.Printf("event broker disabled, dropping %s for %s", OrderSubmittedPattern, evt.OrderID)
	return nil
}

func (NoopPublisher) Close() error { return nil }
