package events

import (
	"encoding/json"
	"time"
)

// Event types published on the hub. lead_created fires after every
// successful conditional insert; consumers (SSE clients, the staging
// transition, the analyzer) react to these.
const (
	TypeLeadCreated = "lead_created"
	TypeLeadUpdated = "lead_updated"
	TypeLeadDeleted = "lead_deleted"
	TypeRunFinished = "run_finished"
	TypePing        = "ping"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent builds the JSON envelope sent over SSE.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
