// Package service holds adapters from the booking core to outside
// systems.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/model"
	"github.com/iliyamo/fixture-tickets/internal/queue"
)

// EventPublisher publishes booking events to a durable RabbitMQ queue.  It
// dials per publish, so a broker outage only affects the events raised
// while it lasts.
type EventPublisher struct {
	url   string
	queue string
	log   *zap.Logger
	send  func(ctx context.Context, body []byte) error
}

var _ booking.Notifier = (*EventPublisher)(nil)

func NewEventPublisher(url, queueName string, log *zap.Logger) *EventPublisher {
	if queueName == "" {
		queueName = queue.DefaultQueue
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &EventPublisher{url: url, queue: queueName, log: log}
	p.send = p.publish
	return p
}

func (p *EventPublisher) BookingSubmitted(ctx context.Context, b model.Booking) error {
	return p.emit(ctx, queue.NewBookingSubmitted(b))
}

func (p *EventPublisher) BookingVerified(ctx context.Context, b model.Booking) error {
	return p.emit(ctx, queue.NewBookingVerified(b))
}

func (p *EventPublisher) emit(ctx context.Context, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.send(ctx, body); err != nil {
		p.log.Warn("rabbitmq: publish failed", zap.String("queue", p.queue), zap.Error(err))
		return err
	}
	return nil
}

func (p *EventPublisher) publish(ctx context.Context, body []byte) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	return ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
