// Package events publishes row change notifications after successful writes.
package events

import (
	"encoding/json"
	"time"
)

// Op is the kind of write that happened.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpToggle Op = "toggle"
)

// ChangeEvent is a lightweight notice that one row changed. Consumers fetch
// the row themselves.
type ChangeEvent struct {
	Table  string    `json:"table"`
	Op     Op        `json:"op"`
	ID     string    `json:"id"`
	UserID string    `json:"user_id,omitempty"`
	At     time.Time `json:"at"`
}

func NewChangeEvent(table string, op Op, id, userID string) *ChangeEvent {
	return &ChangeEvent{
		Table:  table,
		Op:     op,
		ID:     id,
		UserID: userID,
		At:     time.Now().UTC(),
	}
}

// RoutingKey is "<table>.<op>", e.g. "gastos.create".
func (e *ChangeEvent) RoutingKey() string {
	return e.Table + "." + string(e.Op)
}

func (e *ChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ChangeEventFromJSON(data []byte) (*ChangeEvent, error) {
	var e ChangeEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
