package models

import (
	"encoding/json"
	"time"
)

// Event types published after a committed order mutation
const (
	EventOrderCreated       = "order_created"
	EventOrderUpdated       = "order_updated"
	EventOrderDeleted       = "order_deleted"
	EventPaymentUpdated     = "payment_updated"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderEvent is the message published to the orders topic
type OrderEvent struct {
	EventType  string      `json:"event_type"`
	EventID    string      `json:"event_id"`
	OrderID    int64       `json:"order_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

// NewOrderEvent builds an event envelope for the given order mutation
func NewOrderEvent(eventType string, orderID int64, data interface{}) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		EventID:    GenerateEventID(),
		OrderID:    orderID,
		OccurredAt: GetCurrentTime(),
		Data:       data,
	}
}

// Marshal renders the event as JSON
func (e *OrderEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
