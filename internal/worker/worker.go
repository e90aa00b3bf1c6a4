package worker

import (
	"context"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// OrderWorker keeps open order histories in step with the orders service.
// Every status event for a customer triggers a reconciling fetch of each of
// that customer's live sessions.
type OrderWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	sessions     Sessions
	logger       *zap.Logger
}

// Sessions looks up the live session states of a customer.
type Sessions interface {
	ForUser(userID int64) []*service.SessionState
}

// NewOrderWorker creates a new order worker
func NewOrderWorker(consumer *broker.Consumer, sessions Sessions) *OrderWorker {
	w := &OrderWorker{
		consumer:     consumer,
		eventHandler: broker.NewEventHandler(),
		sessions:     sessions,
		logger:       util.GetLogger(),
	}
	w.eventHandler.OnOrderChanged(w.HandleOrderChanged)
	return w
}

// Start starts the worker
func (w *OrderWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting order worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *OrderWorker) Stop() error {
	w.logger.Info("Stopping order worker")
	return w.consumer.Close()
}

// HandleOrderChanged refetches order histories that already were loaded.
// Histories nobody has opened yet are left alone.
func (w *OrderWorker) HandleOrderChanged(ctx context.Context, event *models.OrderStatusEvent) error {
	ctx, span := util.StartSpan(ctx, "OrderWorker.HandleOrderChanged")
	defer span.End()

	for _, st := range w.sessions.ForUser(event.UserID) {
		if !st.Orders.Snapshot().Loaded {
			continue
		}
		if _, err := st.Orders.Fetch(ctx); err != nil {
			w.logger.Warn("Reconciling fetch failed",
				zap.String("session_id", st.SessionID),
				zap.Int64("order_id", event.OrderID),
				zap.Error(err))
			continue
		}
		w.logger.Debug("Order history reconciled",
			zap.String("session_id", st.SessionID),
			zap.Int64("order_id", event.OrderID),
			zap.String("status", string(event.Status)))
	}
	return nil
}
