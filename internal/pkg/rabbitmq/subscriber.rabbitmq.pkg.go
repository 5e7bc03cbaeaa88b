package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/panjf2000/ants/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

const attemptHeader = "x-attempt"

type MessageHandler func(ctx context.Context, msg *amqp.Delivery) error

// SubscribeOptions describes one durable queue, optionally bound to a topic
// exchange. Messages that fail MaxAttempts times are dead-lettered by the
// broker into "<Queue>.dead".
type SubscribeOptions struct {
	Queue          string
	Exchange       string
	RoutingKey     string
	Workers        int
	Prefetch       int
	HandlerTimeout time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
	MaxRetryDelay  time.Duration
}

func DefaultSubscribeOptions(queue string) *SubscribeOptions {
	return &SubscribeOptions{
		Queue:          queue,
		Workers:        2,
		Prefetch:       5,
		HandlerTimeout: 90 * time.Second,
		MaxAttempts:    5,
		RetryDelay:     5 * time.Second,
		MaxRetryDelay:  10 * time.Minute,
	}
}

func (o SubscribeOptions) deadLetterQueue() string {
	return o.Queue + ".dead"
}

// retryDelay doubles per attempt starting at RetryDelay, capped at
// MaxRetryDelay.
func (o SubscribeOptions) retryDelay(attempt int) time.Duration {
	delay := o.RetryDelay
	for i := 1; i < attempt && delay < o.MaxRetryDelay; i++ {
		delay *= 2
	}
	return min(delay, o.MaxRetryDelay)
}

// attempts counts how many times msg was handled before this delivery.
func attempts(msg *amqp.Delivery) int {
	switch v := msg.Headers[attemptHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	if msg.Redelivered {
		return 1
	}
	return 0
}

type Subscriber struct {
	handler  MessageHandler
	opts     SubscribeOptions
	pool     *ants.Pool
	channels []*ChannelManager
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	running  atomic.Bool
}

func NewSubscriber(ctx context.Context, connManager *ConnectionManager, handler MessageHandler, opts *SubscribeOptions) (*Subscriber, error) {
	if connManager == nil {
		return nil, errors.New("connection manager is required")
	}
	if opts == nil || opts.Queue == "" {
		return nil, errors.New("queue name is required")
	}

	o := *opts
	def := DefaultSubscribeOptions(o.Queue)
	if o.Workers <= 0 {
		o.Workers = def.Workers
	}
	if o.Prefetch <= 0 {
		o.Prefetch = def.Prefetch
	}
	if o.HandlerTimeout <= 0 {
		o.HandlerTimeout = def.HandlerTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = def.RetryDelay
	}
	if o.MaxRetryDelay < o.RetryDelay {
		o.MaxRetryDelay = max(def.MaxRetryDelay, o.RetryDelay)
	}

	pool, err := ants.NewPool(o.Workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p interface{}) {
			logger.Error.Printf("%s worker panic: %v\n", o.Queue, p)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s worker pool: %w", o.Queue, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscriber{
		handler:  handler,
		opts:     o,
		pool:     pool,
		channels: make([]*ChannelManager, o.Workers),
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := range sub.channels {
		sub.channels[i] = NewChannelManager(ctx, connManager)
	}
	return sub, nil
}

func (s *Subscriber) Start() error {
	if s.running.Swap(true) {
		return fmt.Errorf("%s subscriber is already running", s.opts.Queue)
	}

	for i := range s.channels {
		worker := i
		s.wg.Add(1)
		if err := s.pool.Submit(func() { s.run(worker) }); err != nil {
			s.wg.Done()
			return fmt.Errorf("failed to start %s worker %d: %w", s.opts.Queue, worker, err)
		}
	}
	return nil
}

func (s *Subscriber) run(worker int) {
	defer s.wg.Done()

	backoff := time.Second
	for s.ctx.Err() == nil {
		handled, err := s.consume(worker)
		if err == nil {
			return
		}
		if handled > 0 {
			backoff = time.Second
		}
		logger.Warning.Printf("%s worker %d: %v, retrying in %s\n", s.opts.Queue, worker, err, backoff)
		s.sleep(backoff)
		backoff = min(backoff*2, 30*time.Second)
	}
}

func (s *Subscriber) sleep(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-s.ctx.Done():
	}
}

// consume returns nil only when the subscriber is stopping.
func (s *Subscriber) consume(worker int) (int, error) {
	ch, err := s.channels[worker].GetChannel()
	if err != nil {
		return 0, err
	}
	if err := s.declare(ch); err != nil {
		return 0, err
	}

	tag := fmt.Sprintf("%s-%d", s.opts.Queue, worker)
	deliveries, err := ch.ConsumeWithContext(s.ctx, s.opts.Queue, tag, false, false, false, false, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to consume %s: %w", s.opts.Queue, err)
	}

	handled := 0
	for msg := range deliveries {
		s.process(worker, msg)
		handled++
	}

	if s.ctx.Err() != nil {
		return handled, nil
	}
	return handled, errors.New("delivery channel closed")
}

func (s *Subscriber) declare(ch *amqp.Channel) error {
	if err := ch.Qos(s.opts.Prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	dead := s.opts.deadLetterQueue()
	if _, err := ch.QueueDeclare(dead, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare %s: %w", dead, err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dead,
	}
	if _, err := ch.QueueDeclare(s.opts.Queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("failed to declare %s: %w", s.opts.Queue, err)
	}

	if s.opts.Exchange == "" {
		return nil
	}
	if err := ch.ExchangeDeclare(s.opts.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", s.opts.Exchange, err)
	}
	if err := ch.QueueBind(s.opts.Queue, s.opts.RoutingKey, s.opts.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind %s to %s: %w", s.opts.Queue, s.opts.Exchange, err)
	}
	return nil
}

func (s *Subscriber) process(worker int, msg amqp.Delivery) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.HandlerTimeout)
	err := s.handler(ctx, &msg)
	cancel()

	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			logger.Error.Printf("%s: failed to ack %s: %v\n", s.opts.Queue, msg.MessageId, ackErr)
		}
		return
	}

	attempt := attempts(&msg) + 1
	if attempt >= s.opts.MaxAttempts {
		logger.Error.Printf("%s: giving up on %s after %d attempts: %v\n", s.opts.Queue, msg.MessageId, attempt, err)
		if nackErr := msg.Nack(false, false); nackErr != nil {
			logger.Error.Printf("%s: failed to dead-letter %s: %v\n", s.opts.Queue, msg.MessageId, nackErr)
		}
		return
	}

	delay := s.opts.retryDelay(attempt)
	logger.Warning.Printf("%s: attempt %d for %s failed, retrying in %s: %v\n", s.opts.Queue, attempt, msg.MessageId, delay, err)
	s.retryLater(worker, msg, attempt, delay)

	if ackErr := msg.Ack(false); ackErr != nil {
		logger.Error.Printf("%s: failed to ack %s: %v\n", s.opts.Queue, msg.MessageId, ackErr)
	}
}

// retryLater republishes msg straight to the queue after delay, so other
// subscribers of the exchange never see the retry.
func (s *Subscriber) retryLater(worker int, msg amqp.Delivery, attempt int, delay time.Duration) {
	headers := amqp.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[attemptHeader] = int32(attempt)

	publishing := amqp.Publishing{
		Headers:      headers,
		ContentType:  msg.ContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.MessageId,
		Timestamp:    msg.Timestamp,
		Type:         msg.Type,
		Body:         msg.Body,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.sleep(delay)
		if s.ctx.Err() != nil {
			return
		}

		ch, err := s.channels[worker].GetChannel()
		if err != nil {
			logger.Error.Printf("%s: retry of %s lost, no channel: %v\n", s.opts.Queue, msg.MessageId, err)
			return
		}
		if err := ch.PublishWithContext(s.ctx, "", s.opts.Queue, false, false, publishing); err != nil {
			logger.Error.Printf("%s: retry of %s lost: %v\n", s.opts.Queue, msg.MessageId, err)
		}
	}()
}

func (s *Subscriber) Stop() error {
	if !s.running.Swap(false) {
		return nil
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Minute):
		return fmt.Errorf("timeout waiting for %s workers to stop", s.opts.Queue)
	}

	for i, ch := range s.channels {
		if err := ch.Close(); err != nil {
			logger.Error.Printf("Error closing channel for %s worker %d: %v\n", s.opts.Queue, i, err)
		}
	}
	s.pool.Release()
	return nil
}
