package models

import "time"

// Event types
const (
	EventTypeOrderCreated = "ORDER_CREATED"
	EventTypeOrderUpdated = "ORDER_UPDATED"
	EventTypeOrderDeleted = "ORDER_DELETED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderLineData represents line data carried in events
type OrderLineData struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderCreatedEvent published after a new order aggregate is committed
type OrderCreatedEvent struct {
	BaseEvent
	OrderID   string          `json:"order_id"`
	ClientCPF string          `json:"client_cpf"`
	Date      string          `json:"date"`
	Lines     []OrderLineData `json:"lines"`
}

// OrderUpdatedEvent published after an order's header and item set are replaced
type OrderUpdatedEvent struct {
	BaseEvent
	OrderID   string          `json:"order_id"`
	ClientCPF string          `json:"client_cpf"`
	Date      string          `json:"date"`
	Lines     []OrderLineData `json:"lines"`
}

// OrderDeletedEvent published after an order and its items are removed
type OrderDeletedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
}

// LinesData converts order lines to their event representation.
func LinesData(lines []OrderLine) []OrderLineData {
	out := make([]OrderLineData, 0, len(lines))
	for _, l := range lines {
		out = append(out, OrderLineData{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}
