package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher publishes check-in events to RabbitMQ.  Each publish opens
// its own connection, so the publisher holds no state besides the URL and
// is safe for concurrent use.
type AMQPPublisher struct {
	url string
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

// PublishCheckinCompleted publishes ev to the checkin.completed queue as a
// persistent JSON message.
func (p *AMQPPublisher) PublishCheckinCompleted(ctx context.Context, ev CheckinCompletedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declareQueue(ch); err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", CheckinQueueName, false, false, pub); err != nil {
		return fmt.Errorf("publish %s: %w", CheckinQueueName, err)
	}
	return nil
}

func declareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		CheckinQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare %s: %w", CheckinQueueName, err)
	}
	return nil
}
