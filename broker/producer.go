package broker

import (
	"log"

	"taskory/taskory/config"
	"taskory/taskory/models"

	"github.com/nats-io/nats.go"
)

var conn *nats.Conn

// InitProducer connects to the NATS server. Publishing is best-effort:
// when the connection is unavailable the API keeps serving requests and
// events are only recorded in the outbox table.
func InitProducer(cfg config.Config) error {
	var err error
	conn, err = nats.Connect(cfg.NatsURL,
		nats.Name("taskory-api"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return err
	}
	log.Printf("NATS producer connected to %s", cfg.NatsURL)
	return nil
}

// PublishEvent sends a committed outbox event to the given subject.
func PublishEvent(subject string, event *models.Event) {
	if conn == nil {
		return
	}

	payload, err := event.ToJSON()
	if err != nil {
		log.Printf("Failed to serialize event %s: %v", event.Event, err)
		return
	}

	if err := conn.Publish(subject, payload); err != nil {
		log.Printf("Failed to publish %s to %s: %v", event.Event, subject, err)
	}
}

func CloseProducer() {
	if conn != nil {
		if err := conn.Drain(); err != nil {
			log.Printf("Failed to drain NATS connection: %v", err)
		}
		conn = nil
	}
}
