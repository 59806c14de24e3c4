package events

import (
	"encoding/json"
	"time"
)

// Envelope is the wire form of an Event.
type Envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func Marshal(e Event) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Unmarshal(data []byte) (BaseEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return BaseEvent{}, err
	}
	return BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}
