// Package notify delivers queued notification jobs to the message broker.
// Jobs are written transactionally alongside the reservation change and
// drained by a background dispatcher, so a broker outage never fails a
// booking request.
package notify

import (
	"context"
	"time"

	"reservation-engine/internal/pkg/config"
	"reservation-engine/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(ctx context.Context, body []byte) error
}

type AMQPPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewAMQPPublisher(cfg config.AMQPConfig) (*AMQPPublisher, func(), error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect to AMQP broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to open AMQP channel")
	}

	// Durable so queued notifications survive broker restarts.
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to declare notification queue")
	}

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	return &AMQPPublisher{conn: conn, ch: ch, queue: cfg.Queue}, cleanup, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, body []byte) error {
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, pub)
	if err != nil {
		return errs.Wrap(err, "failed to publish notification")
	}
	return nil
}
