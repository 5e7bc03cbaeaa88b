package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChannelManager hands out one channel per worker and reopens it when the
// broker or the connection closed it.
type ChannelManager struct {
	connManager *ConnectionManager
	ch          *amqp.Channel
	mu          sync.Mutex
	ctx         context.Context
}

func NewChannelManager(ctx context.Context, connManager *ConnectionManager) *ChannelManager {
	return &ChannelManager{
		connManager: connManager,
		ctx:         ctx,
	}
}

func (c *ChannelManager) GetChannel() (*amqp.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ctx.Err(); err != nil {
		return nil, fmt.Errorf("context canceled: %w", err)
	}

	if c.ch != nil && !c.ch.IsClosed() {
		return c.ch, nil
	}

	conn := c.connManager.GetConnection()
	if conn == nil || conn.IsClosed() {
		return nil, errors.New("connection not available")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	c.ch = ch
	return ch, nil
}

func (c *ChannelManager) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch == nil || c.ch.IsClosed() {
		c.ch = nil
		return nil
	}

	err := c.ch.Close()
	c.ch = nil
	return err
}
