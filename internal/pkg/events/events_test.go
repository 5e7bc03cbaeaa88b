package events

import (
	"context"
	"errors"
	"testing"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/kafka"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
)

func TestNewPublisherNone(t *testing.T) {
	pub, err := NewPublisher(context.Background(), Config{Broker: enum.BROKER_NONE}, nil)
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	if err := pub.PublishOrderSubmitted(context.Background(), OrderSubmitted{OrderID: "BP-1-a"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestNewPublisherKafkaWithoutBrokers(t *testing.T) {
	_, err := NewPublisher(context.Background(), Config{Broker: enum.BROKER_KAFKA}, nil)
	if !errors.Is(err, kafka.ErrDisabled) {
		t.Fatalf("err = %v, want ErrDisabled", err)
	}
}

func TestRabbitHandlerDecodesEnvelope(t *testing.T) {
	msg, err := rabbitmq.NewPubsubMessage(OrderSubmittedPattern, OrderSubmitted{OrderID: "BP-1-a", Total: 2400})
	if err != nil {
		t.Fatalf("NewPubsubMessage: %v", err)
	}

	var got OrderSubmitted
	h := rabbitHandler(func(_ context.Context, evt OrderSubmitted) error {
		got = evt
		return nil
	})

	if err := h(context.Background(), &amqp.Delivery{Body: msg.Body}); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got.OrderID != "BP-1-a" || got.Total != 2400 {
		t.Fatalf("event = %+v", got)
	}
}

func TestRabbitHandlerSkipsOtherPatterns(t *testing.T) {
	msg, err := rabbitmq.NewPubsubMessage("order.cancelled", map[string]string{})
	if err != nil {
		t.Fatalf("NewPubsubMessage: %v", err)
	}

	called := false
	h := rabbitHandler(func(context.Context, OrderSubmitted) error {
		called = true
		return nil
	})
	if err := h(context.Background(), &amqp.Delivery{Body: msg.Body}); err != nil || called {
		t.Fatalf("err = %v, called = %v", err, called)
	}
}

func TestRabbitHandlerRejectsGarbage(t *testing.T) {
	h := rabbitHandler(func(context.Context, OrderSubmitted) error { return nil })
	if err := h(context.Background(), &amqp.Delivery{Body: []byte("nope")}); err == nil {
		t.Fatal("expected error for invalid body")
	}
}
