package rabbitmq

import (
	"context"
	"fmt"
	"sync"
)

type Publisher struct {
	channel  *ChannelManager
	mu       sync.Mutex
	declared map[string]bool
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, fmt.Errorf("connection manager is required")
	}
	return &Publisher{
		channel:  NewChannelManager(ctx, connManager),
		declared: map[string]bool{},
	}, nil
}

// DeclareExchange declares a durable exchange once per publisher.
func (p *Publisher) DeclareExchange(name, kind string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.declared[name] {
		return nil
	}

	ch, err := p.channel.GetChannel()
	if err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(name, kind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", name, err)
	}
	p.declared[name] = true
	return nil
}

func (p *Publisher) Publish(ctx context.Context, exchange, routingKey string, msg *Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel.GetChannel()
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, exchange, routingKey, false, false, *msg.GeneratePayload()); err != nil {
		// the channel is reopened on the next call
		delete(p.declared, exchange)
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}
