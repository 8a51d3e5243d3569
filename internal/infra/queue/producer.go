package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SyncJobPayload is what travels on the queue: which run to execute and
// which source it pulls from.
type SyncJobPayload struct {
	RunID  string `json:"run_id"`
	Source string `json:"source"` // HELLOASSO or GSHEET
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishSyncJob(ctx context.Context, payload SyncJobPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // survives a broker restart
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
