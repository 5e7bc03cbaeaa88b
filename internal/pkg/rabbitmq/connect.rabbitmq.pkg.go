package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	connectionName = "basseinpay"
	heartbeat      = 10 * time.Second
	maxBackoff     = 30 * time.Second
)

type Config struct {
	Username string
	Password string
	Host     string
	Port     int
	// URI wins over the discrete fields when set.
	URI string
}

func (c Config) url() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/",
	}
	return u.String()
}

// ConnectionManager owns one broker connection and redials it in the
// background whenever the broker closes it.
type ConnectionManager struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	addr   string
	ctx    context.Context
	cancel context.CancelFunc
}

func NewConnectionManager(ctx context.Context, config *Config) (*ConnectionManager, error) {
	if config == nil {
		return nil, errors.New("rabbitmq config is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	cm := &ConnectionManager{
		addr:   config.url(),
		ctx:    ctx,
		cancel: cancel,
	}

	conn, err := cm.dial()
	if err != nil {
		cancel()
		return nil, err
	}
	cm.watch(conn)
	return cm, nil
}

func (cm *ConnectionManager) dial() (*amqp.Connection, error) {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(connectionName)

	conn, err := amqp.DialConfig(cm.addr, amqp.Config{
		Heartbeat:  heartbeat,
		Properties: props,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

func (cm *ConnectionManager) watch(conn *amqp.Connection) {
	cm.mu.Lock()
	cm.conn = conn
	cm.mu.Unlock()

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		select {
		case <-cm.ctx.Done():
			return
		case err, ok := <-closed:
			if !ok || err == nil {
				// graceful close
				return
			}
			logger.Warning.Printf("RabbitMQ connection lost: %v\n", err)
		}

		cm.mu.Lock()
		cm.conn = nil
		cm.mu.Unlock()
		cm.redial()
	}()
}

func (cm *ConnectionManager) redial() {
	backoff := time.Second
	for {
		t := time.NewTimer(backoff)
		select {
		case <-cm.ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}

		conn, err := cm.dial()
		if err != nil {
			logger.Warning.Printf("%v, retrying in %s\n", err, backoff)
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		logger.Info.Println("RabbitMQ reconnected")
		cm.watch(conn)
		return
	}
}

// GetConnection returns nil while the connection is down.
func (cm *ConnectionManager) GetConnection() *amqp.Connection {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.ctx.Err() != nil {
		return nil
	}
	return cm.conn
}

func (cm *ConnectionManager) IsClosed() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.ctx.Err() != nil || cm.conn == nil || cm.conn.IsClosed()
}

func (cm *ConnectionManager) Close() error {
	cm.cancel()

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.conn == nil {
		return nil
	}
	err := cm.conn.Close()
	cm.conn = nil
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}
