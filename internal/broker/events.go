package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cafe-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing order lifecycle events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderCreated publishes OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("order-%s", event.OrderID), event)
}

// PublishOrderUpdated publishes OrderUpdated event
func (ep *EventPublisher) PublishOrderUpdated(ctx context.Context, event *models.OrderUpdatedEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("order-%s", event.OrderID), event)
}

// PublishOrderDeleted publishes OrderDeleted event
func (ep *EventPublisher) PublishOrderDeleted(ctx context.Context, event *models.OrderDeletedEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("order-%s", event.OrderID), event)
}

// EventHandler routes consumed order events to registered callbacks.
type EventHandler struct {
	onOrderChanged func(ctx context.Context, eventType, orderID string) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrderChanged registers a handler invoked for every order lifecycle
// event (created, updated, deleted).
func (eh *EventHandler) OnOrderChanged(handler func(ctx context.Context, eventType, orderID string) error) {
	eh.onOrderChanged = handler
}

// HandleMessage decodes the event envelope and dispatches it.
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var envelope struct {
		models.BaseEvent
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	switch envelope.EventType {
	case models.EventTypeOrderCreated, models.EventTypeOrderUpdated, models.EventTypeOrderDeleted:
		if eh.onOrderChanged != nil {
			return eh.onOrderChanged(ctx, envelope.EventType, envelope.OrderID)
		}
	default:
		log.Printf("Unhandled event type: %s", envelope.EventType)
	}

	return nil
}
