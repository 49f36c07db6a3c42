package events

import (
	"context"
	"encoding/json"
	"time"

	"jobhub_backend/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers domain events. Publishing is fire-and-forget: errors
// are logged and returned so callers may ignore them without interrupting
// the request that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// AMQPPublisher sends events as persistent JSON messages to one durable
// queue, routed by event name in the message type header.
type AMQPPublisher struct {
	url   string
	queue string
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		logger.CtxWithError(ctx, "event publish: broker dial failed", err, "event", event.EventName())
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.CtxWithError(ctx, "event publish: channel open failed", err, "event", event.EventName())
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so events survive broker restarts. Declare is idempotent.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		logger.CtxWithError(ctx, "event publish: queue declare failed", err, "event", event.EventName())
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.CtxWithError(ctx, "event publish: marshal failed", err, "event", event.EventName())
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		Type:         event.EventName(),
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		logger.CtxWithError(ctx, "event publish: publish failed", err, "event", event.EventName())
		return err
	}

	return nil
}

// Fanout forwards each event to every registered publisher. A failing
// sink never blocks the others.
type Fanout struct {
	sinks []Publisher
}

func NewFanout(sinks ...Publisher) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Publish(ctx context.Context, event Event) error {
	var firstErr error
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
