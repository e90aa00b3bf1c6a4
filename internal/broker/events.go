package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventPublisher publishes storefront activity events. A publisher without
// a producer drops everything, which is how the service runs without Kafka.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher; producer may be nil.
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

func newBase(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	}
}

func (ep *EventPublisher) publish(ctx context.Context, key string, event interface{}) error {
	if ep == nil || ep.producer == nil {
		return nil
	}
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishCartItemAdded publishes CartItemAdded event
func (ep *EventPublisher) PublishCartItemAdded(ctx context.Context, userID, productID int64, quantity int) error {
	event := &models.CartItemAddedEvent{
		BaseEvent: newBase(models.EventTypeCartItemAdded),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return ep.publish(ctx, fmt.Sprintf("user-%d", userID), event)
}

// PublishOrderCancelRequested publishes OrderCancelRequested event
func (ep *EventPublisher) PublishOrderCancelRequested(ctx context.Context, userID, orderID int64) error {
	event := &models.OrderCancelRequestedEvent{
		BaseEvent: newBase(models.EventTypeOrderCancelRequest),
		UserID:    userID,
		OrderID:   orderID,
	}
	return ep.publish(ctx, fmt.Sprintf("user-%d", userID), event)
}

// PublishSessionEvent publishes a login or logout
func (ep *EventPublisher) PublishSessionEvent(ctx context.Context, eventType string, userID int64, sessionID string) error {
	event := &models.CustomerSessionEvent{
		BaseEvent: newBase(eventType),
		UserID:    userID,
		SessionID: sessionID,
	}
	return ep.publish(ctx, fmt.Sprintf("user-%d", userID), event)
}

// EventHandler routes order events from the orders service
type EventHandler struct {
	onOrderChanged func(context.Context, *models.OrderStatusEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrderChanged registers the handler for every order status event type.
func (eh *EventHandler) OnOrderChanged(handler func(context.Context, *models.OrderStatusEvent) error) {
	eh.onOrderChanged = handler
}

// HandleMessage routes messages to the registered handler
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderStatusChanged, models.EventTypeOrderCancelled, models.EventTypeOrderPaid:
		if eh.onOrderChanged == nil {
			return nil
		}
		var event models.OrderStatusEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("failed to unmarshal %s event: %w", baseEvent.EventType, err)
		}
		return eh.onOrderChanged(ctx, &event)
	}

	return nil
}
