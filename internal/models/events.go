package models

import "time"

// Event types
const (
	EventTypeCartItemAdded      = "STOREFRONT_CART_ITEM_ADDED"
	EventTypeOrderCancelRequest = "STOREFRONT_ORDER_CANCEL_REQUESTED"
	EventTypeCustomerLoggedIn   = "STOREFRONT_CUSTOMER_LOGGED_IN"
	EventTypeCustomerLoggedOut  = "STOREFRONT_CUSTOMER_LOGGED_OUT"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeOrderCancelled     = "ORDER_CANCELLED"
	EventTypeOrderPaid          = "ORDER_PAID"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemAddedEvent published after the cart service accepted an item
type CartItemAddedEvent struct {
	BaseEvent
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderCancelRequestedEvent published after the orders service accepted a cancel
type OrderCancelRequestedEvent struct {
	BaseEvent
	UserID  int64 `json:"user_id"`
	OrderID int64 `json:"order_id"`
}

// CustomerSessionEvent published on login and logout
type CustomerSessionEvent struct {
	BaseEvent
	UserID    int64  `json:"user_id"`
	SessionID string `json:"session_id"`
}

// OrderStatusEvent is consumed from the orders service's topic. Only the
// user id is trusted; the status itself is re-read from the service.
type OrderStatusEvent struct {
	BaseEvent
	OrderID int64       `json:"order_id"`
	UserID  int64       `json:"user_id"`
	Status  OrderStatus `json:"status,omitempty"`
}
