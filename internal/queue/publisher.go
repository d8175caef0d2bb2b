package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers sale notifications. Callers treat errors as
// non-fatal: the sale is already committed.
type Publisher interface {
	PublishSaleRecorded(ctx context.Context, ev SaleRecordedEvent) error
}

// NewPublisher returns an AMQP publisher for url, or a no-op publisher
// when url is empty.
func NewPublisher(url string) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return &AMQPPublisher{url: url}
}

// NopPublisher drops every event.
type NopPublisher struct{}

// PublishSaleRecorded discards ev.
func (NopPublisher) PublishSaleRecorded(context.Context, SaleRecordedEvent) error { return nil }

// AMQPPublisher dials the broker for every message, declares the durable
// queue and publishes a persistent JSON message on the default exchange.
// Sales are rare enough that a long-lived channel is not worth its
// reconnect handling. Failures are returned, not logged; the caller
// decides how to report them.
type AMQPPublisher struct {
	url string
}

// PublishSaleRecorded sends ev to SaleRecordedQueue.
func (p *AMQPPublisher) PublishSaleRecorded(ctx context.Context, ev SaleRecordedEvent) error {
	msg, err := encode(ev)
	if err != nil {
		return err
	}
	if err := p.publish(ctx, SaleRecordedQueue, msg); err != nil {
		return fmt.Errorf("publish sale %d: %w", ev.SaleID, err)
	}
	return nil
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, msg amqp.Publishing) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(5 * time.Second)})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// idempotent; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		msg,
	); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func encode(ev SaleRecordedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal %s: %w", SaleRecordedQueue, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         SaleRecordedQueue,
		Body:         body,
	}, nil
}
