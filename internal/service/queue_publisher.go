// Package service publishes listing events to RabbitMQ. Publishing is
// best effort: callers log failures and carry on, so a broker outage never
// fails a write that has already committed.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Timmy-id/fyyur/internal/queue"
)

// Publisher sends listing events somewhere.
type Publisher interface {
	Publish(ctx context.Context, ev queue.ListingEvent) error
}

// NewPublisher returns an AMQP publisher for url, or a no-op publisher when
// url is empty.
func NewPublisher(url string) Publisher {
	if url == "" {
		return NoopPublisher{}
	}
	return &AMQPPublisher{URL: url}
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, queue.ListingEvent) error { return nil }

// AMQPPublisher dials the broker per event and publishes a persistent JSON
// message to the listing queue. Write traffic is low enough that a
// connection per publish is fine.
type AMQPPublisher struct {
	URL string
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.ListingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.ListingQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.ListingQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
