package models

// OrderStatus is the lifecycle state of an order. The orders service is the
// only authority on it; the storefront reads it and never advances it.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPendingPayment: {OrderStatusPaid: true, OrderStatusCanceled: true},
	OrderStatusPaid:           {OrderStatusShipped: true},
	OrderStatusShipped:        {OrderStatusDelivered: true},
	OrderStatusDelivered:      {},
	OrderStatusCanceled:       {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// CanCancel reports whether the customer may cancel an order in status s.
func CanCancel(s OrderStatus) bool {
	return s == OrderStatusPendingPayment
}

// IsTerminal reports whether no further transition exists from s.
func IsTerminal(s OrderStatus) bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

func (s OrderStatus) Known() bool {
	_, ok := validNext[s]
	return ok
}
