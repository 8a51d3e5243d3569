package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

// SyncRunner is one reconciliation pipeline (members or volunteers).
type SyncRunner interface {
	Execute(ctx context.Context, run *entity.SyncRun) error
}

// RunStore is the slice of the run repository the worker needs.
type RunStore interface {
	FindByID(ctx context.Context, id string) (*entity.SyncRun, error)
}

type Worker struct {
	Channel    *amqp.Channel
	Members    SyncRunner
	Volunteers SyncRunner
	Runs       RunStore
}

func NewWorker(ch *amqp.Channel, members, volunteers SyncRunner, runs RunStore) *Worker {
	return &Worker{
		Channel:    ch,
		Members:    members,
		Volunteers: volunteers,
		Runs:       runs,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			log.Printf("📥 [WORKER] Message received from RabbitMQ")

			var payload SyncJobPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Invalid JSON: %s", err)
				// Poison message. Reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Processing run %s (source: %s)", payload.RunID, payload.Source)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Run failed: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Run %s finished", payload.RunID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload SyncJobPayload) error {
	run, err := w.Runs.FindByID(ctx, payload.RunID)
	if err != nil {
		return err
	}

	switch payload.Source {
	case entity.SourceHelloAsso:
		return w.Members.Execute(ctx, run)

	case entity.SourceSheet:
		return w.Volunteers.Execute(ctx, run)

	default:
		log.Printf("⚠️ Unknown source: %s. Acking to drop the message.", payload.Source)
		return nil
	}
}
