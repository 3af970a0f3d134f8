package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// EntryEventMessage is the lightweight queue message emitted when an
// entry is created or deleted. It carries only the id, the action and
// the affected date; the worker fetches full rows from the database.
type EntryEventMessage struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	EntryDate string    `json:"entry_date"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryEventMessage(id int64, action, entryDate string) *EntryEventMessage {
	return &EntryEventMessage{
		ID:        id,
		Action:    action,
		EntryDate: entryDate,
		Timestamp: time.Now(),
	}
}

func (m *EntryEventMessage) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("invalid entry id %d", m.ID)
	}
	if m.Action != ActionCreated && m.Action != ActionDeleted {
		return fmt.Errorf("unknown action %q", m.Action)
	}
	if m.EntryDate == "" {
		return fmt.Errorf("missing entry date")
	}
	return nil
}

func (m *EntryEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryEventMessageFromJSON(data []byte) (*EntryEventMessage, error) {
	var msg EntryEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
