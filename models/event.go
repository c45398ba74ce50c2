package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is an outbox row written in the same transaction as the change
// it describes, then published to the broker after commit.
type Event struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Event     string          `gorm:"not null" json:"event"`
	Version   int             `gorm:"not null" json:"version"`
	Entity    string          `gorm:"not null" json:"entity"`
	ActorID   string          `gorm:"not null" json:"actor_id"`
	Timestamp time.Time       `gorm:"not null" json:"timestamp"`
	Data      json.RawMessage `gorm:"not null" json:"data"`
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func NewEvent(event, entity, actorID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Event:     event,
		Version:   1,
		Entity:    entity,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}
