// Package service holds adapters between the booking engine and external
// infrastructure.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/facility-booking/internal/model"
	"github.com/iliyamo/facility-booking/internal/queue"
)

// QueuePublisher publishes reservation events to RabbitMQ.  It implements
// booking.Publisher.  A connection is dialled per event; booking traffic is
// low and this keeps the publisher free of reconnect state.
type QueuePublisher struct {
	URL    string
	Logger *log.Logger
}

// NewQueuePublisher returns a publisher for the broker at url.
func NewQueuePublisher(url string, logger *log.Logger) *QueuePublisher {
	return &QueuePublisher{URL: url, Logger: logger}
}

// PublishReservationCreated publishes a ReservationCreatedEvent to the
// reservation.created queue as a persistent message.  Errors are logged and
// returned so the caller can choose to ignore them.
func (p *QueuePublisher) PublishReservationCreated(ctx context.Context, r model.Reservation) error {
	body, err := json.Marshal(queue.NewReservationCreatedEvent(r))
	if err != nil {
		p.Logger.Errorf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(2 * time.Second)})
	if err != nil {
		p.Logger.Warnf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Warnf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.ReservationCreatedQueue, // name
		true,                          // durable
		false,                         // autoDelete
		false,                         // exclusive
		false,                         // noWait
		nil,                           // args
	); err != nil {
		p.Logger.Warnf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    r.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.ReservationCreatedQueue, false, false, msg); err != nil {
		p.Logger.Warnf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
