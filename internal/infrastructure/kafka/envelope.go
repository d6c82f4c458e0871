package kafka

import (
	"encoding/json"
	"time"
)

// Envelope wraps every message on the order event topic. Payload stays raw so
// consumers can pick their own decode target per event type.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}
