package listeners

import (
	"context"
	"encoding/json"
	"time"

	"jobhub_backend/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

const reconnectDelay = 5 * time.Second

// TransactionConsumer drives the PaymentReconciliationListener from a
// durable AMQP queue. It reconnects with a fixed backoff and acks every
// delivery: reconciliation failures are absorbed inside the handler, and
// undecodable payloads are nacked without requeue so a poison message
// cannot loop forever.
type TransactionConsumer struct {
	url      string
	queue    string
	db       *gorm.DB
	listener *PaymentReconciliationListener
}

func NewTransactionConsumer(url, queue string, db *gorm.DB, listener *PaymentReconciliationListener) *TransactionConsumer {
	return &TransactionConsumer{
		url:      url,
		queue:    queue,
		db:       db,
		listener: listener,
	}
}

// Start blocks until ctx is cancelled, reconnecting to the broker whenever
// the connection drops. Run it in its own goroutine.
func (c *TransactionConsumer) Start(ctx context.Context) {
	for {
		if err := c.consume(ctx); err != nil {
			logger.WithError(err).Warn("transaction consumer disconnected, reconnecting",
				"queue", c.queue, "retry_in", reconnectDelay.String())
		}

		select {
		case <-ctx.Done():
			logger.Info("transaction consumer stopped", "queue", c.queue)
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *TransactionConsumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return err
	}

	// One unacked message at a time keeps reconciliation strictly ordered
	// per consumer.
	if err := ch.Qos(1, 0, false); err != nil {
		return err
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	logger.Info("transaction consumer started", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return amqp.ErrClosed
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

func (c *TransactionConsumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	var evt TransactionCompletedEvent
	if err := json.Unmarshal(delivery.Body, &evt); err != nil {
		logger.WithError(err).Warn("discarding undecodable transaction message", "queue", c.queue)
		_ = delivery.Nack(false, false)
		return
	}

	c.listener.Handle(ctx, c.db, &evt)
	_ = delivery.Ack(false)
}
