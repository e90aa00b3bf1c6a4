package service

import (
	"context"
	"fmt"

	"storefront/internal/backend"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OrderSnapshot is the customer's order history as last fetched.
type OrderSnapshot struct {
	Orders  []models.OrderWithItems
	Loaded  bool
	LoadErr error
	Version uint64
}

// Find returns the order with id from the snapshot.
func (s OrderSnapshot) Find(id int64) (models.OrderWithItems, bool) {
	for _, o := range s.Orders {
		if o.Order.ID == id {
			return o, true
		}
	}
	return models.OrderWithItems{}, false
}

// OrderHistory owns the order list of one session. Status changes are only
// ever observed through a fetch.
type OrderHistory struct {
	api    OrderBackend
	events ActivityPublisher
	owner  owner
	state  *observable[OrderSnapshot]
	logger *zap.Logger
}

func NewOrderHistory(api OrderBackend, events ActivityPublisher, userID int64, token string) *OrderHistory {
	return &OrderHistory{
		api:    api,
		events: publisherOrNop(events),
		owner:  owner{userID: userID, token: token},
		state:  newObservable("orders", OrderSnapshot{Orders: []models.OrderWithItems{}}),
		logger: util.GetLogger(),
	}
}

func (h *OrderHistory) Snapshot() OrderSnapshot {
	return h.state.current()
}

func (h *OrderHistory) Subscribe() (<-chan OrderSnapshot, func()) {
	return h.state.subscribe()
}

// Fetch reloads the order list.
func (h *OrderHistory) Fetch(ctx context.Context) (OrderSnapshot, error) {
	ctx, span := util.StartSpan(ctx, "OrderHistory.Fetch", attribute.Int64("user_id", h.owner.userID))
	defer span.End()

	if !h.owner.authenticated() {
		return h.Snapshot(), ErrUnauthenticated
	}

	seq := h.state.begin()
	orders, err := h.api.List(backend.WithToken(ctx, h.owner.token))

	applied := h.state.commit(seq, func(cur *OrderSnapshot, v uint64) {
		cur.Version = v
		if err != nil {
			cur.LoadErr = err
			return
		}
		if orders == nil {
			orders = []models.OrderWithItems{}
		}
		cur.Orders = orders
		cur.Loaded = true
		cur.LoadErr = nil
	})

	if err != nil {
		util.RecordError(span, err)
		h.logger.Warn("Order history fetch failed", zap.Int64("user_id", h.owner.userID), zap.Error(err))
	}
	if !applied {
		h.logger.Debug("Discarded stale order completion", zap.Uint64("seq", seq))
	}

	return h.Snapshot(), err
}

// Cancel asks the orders service to cancel orderID. Only orders known to be
// awaiting payment may be cancelled; an id missing from the snapshot is
// looked up with one fetch first. The new status comes from a refetch.
func (h *OrderHistory) Cancel(ctx context.Context, orderID int64) (OrderSnapshot, error) {
	ctx, span := util.StartSpan(ctx, "OrderHistory.Cancel", attribute.Int64("order_id", orderID))
	defer span.End()

	if !h.owner.authenticated() {
		util.OrderCancelsTotal.WithLabelValues("unauthenticated").Inc()
		return h.Snapshot(), ErrUnauthenticated
	}

	order, ok := h.Snapshot().Find(orderID)
	if !ok {
		// The order may have been placed since the last fetch.
		snap, err := h.Fetch(ctx)
		if err != nil {
			util.OrderCancelsTotal.WithLabelValues("error").Inc()
			return snap, fmt.Errorf("failed to load order %d: %w", orderID, err)
		}
		order, ok = snap.Find(orderID)
	}
	if !ok || !models.CanCancel(order.Order.Status) {
		util.OrderCancelsTotal.WithLabelValues("rejected").Inc()
		return h.Snapshot(), fmt.Errorf("order %d: %w", orderID, ErrCancelNotAllowed)
	}

	if err := h.api.Cancel(backend.WithToken(ctx, h.owner.token), orderID); err != nil {
		util.RecordError(span, err)
		util.OrderCancelsTotal.WithLabelValues("error").Inc()
		h.logger.Warn("Order cancel failed", zap.Int64("order_id", orderID), zap.Error(err))
		return h.Snapshot(), fmt.Errorf("failed to cancel order %d: %w", orderID, err)
	}
	util.OrderCancelsTotal.WithLabelValues("success").Inc()

	if err := h.events.PublishOrderCancelRequested(ctx, h.owner.userID, orderID); err != nil {
		h.logger.Warn("Failed to publish cancel event", zap.Error(err))
	}

	h.logger.Info("Order cancelled", zap.Int64("order_id", orderID), zap.Int64("user_id", h.owner.userID))

	snap, _ := h.Fetch(ctx)
	return snap, nil
}
