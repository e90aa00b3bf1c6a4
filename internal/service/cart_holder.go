package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/backend"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CartSnapshot is what a cart view renders. Cart always holds the last
// successful fetch; LoadErr is set when the most recent fetch failed.
type CartSnapshot struct {
	Cart    models.Cart
	Loaded  bool
	LoadErr error
	Version uint64
}

// TotalItems is the badge counter value.
func (s CartSnapshot) TotalItems() int {
	return s.Cart.TotalItems()
}

// AddToCartRequest is the add-to-cart guard input. Stock is the product's
// stock as last shown to the customer.
type AddToCartRequest struct {
	ProductID int64  `validate:"gt=0"`
	Quantity  int    `validate:"min=1,ltefield=Stock"`
	Note      string `validate:"max=500"`
	Stock     int    `validate:"min=0"`
}

var validate = validator.New()

func (r AddToCartRequest) check() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Quantity" {
				return ErrInvalidQuantity
			}
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, verrs[0].Field())
	}
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

// CartHolder owns the cart state of one session. Only completions of Fetch
// write the snapshot; Add never touches it directly.
type CartHolder struct {
	api    CartBackend
	events ActivityPublisher
	owner  owner
	state  *observable[CartSnapshot]
	logger *zap.Logger
}

type owner struct {
	userID int64
	token  string
}

func (o owner) authenticated() bool {
	return o.token != ""
}

// NewCartHolder creates a cart holder for the customer holding token. An
// empty token gives an anonymous holder that refuses every operation.
func NewCartHolder(api CartBackend, events ActivityPublisher, userID int64, token string) *CartHolder {
	return &CartHolder{
		api:    api,
		events: publisherOrNop(events),
		owner:  owner{userID: userID, token: token},
		state:  newObservable("cart", CartSnapshot{Cart: models.Cart{Items: []models.CartItem{}}}),
		logger: util.GetLogger(),
	}
}

// Snapshot returns the current cart state.
func (h *CartHolder) Snapshot() CartSnapshot {
	return h.state.current()
}

// Subscribe streams snapshots, latest first. Call cancel to stop.
func (h *CartHolder) Subscribe() (<-chan CartSnapshot, func()) {
	return h.state.subscribe()
}

// Fetch replaces the snapshot with the server's cart. A failed fetch keeps
// the previous items and records the error on the snapshot.
func (h *CartHolder) Fetch(ctx context.Context) (CartSnapshot, error) {
	ctx, span := util.StartSpan(ctx, "CartHolder.Fetch", attribute.Int64("user_id", h.owner.userID))
	defer span.End()

	if !h.owner.authenticated() {
		return h.Snapshot(), ErrUnauthenticated
	}

	seq := h.state.begin()
	cart, err := h.api.Get(backend.WithToken(ctx, h.owner.token))

	applied := h.state.commit(seq, func(cur *CartSnapshot, v uint64) {
		cur.Version = v
		if err != nil {
			cur.LoadErr = err
			return
		}
		if cart != nil {
			cur.Cart = *cart
		} else {
			cur.Cart = models.Cart{Items: []models.CartItem{}}
		}
		cur.Loaded = true
		cur.LoadErr = nil
	})

	if err != nil {
		util.RecordError(span, err)
		util.CartFetchesTotal.WithLabelValues("error").Inc()
		h.logger.Warn("Cart fetch failed", zap.Int64("user_id", h.owner.userID), zap.Error(err))
	} else {
		util.CartFetchesTotal.WithLabelValues("success").Inc()
	}
	if !applied {
		h.logger.Debug("Discarded stale cart completion", zap.Uint64("seq", seq))
	}

	return h.Snapshot(), err
}

// Add puts a product in the server cart and reconciles with a fetch. The
// returned snapshot reflects that fetch.
func (h *CartHolder) Add(ctx context.Context, req AddToCartRequest) (CartSnapshot, error) {
	ctx, span := util.StartSpan(ctx, "CartHolder.Add",
		attribute.Int64("product_id", req.ProductID),
		attribute.Int("quantity", req.Quantity))
	defer span.End()

	if !h.owner.authenticated() {
		util.CartAddsTotal.WithLabelValues("unauthenticated").Inc()
		return h.Snapshot(), ErrUnauthenticated
	}
	if err := req.check(); err != nil {
		util.CartAddsTotal.WithLabelValues("invalid").Inc()
		return h.Snapshot(), err
	}

	if err := h.api.AddItem(backend.WithToken(ctx, h.owner.token), req.ProductID, req.Quantity, req.Note); err != nil {
		util.RecordError(span, err)
		util.CartAddsTotal.WithLabelValues("error").Inc()
		h.logger.Warn("Add to cart failed",
			zap.Int64("user_id", h.owner.userID),
			zap.Int64("product_id", req.ProductID),
			zap.Error(err))
		return h.Snapshot(), fmt.Errorf("failed to add product %d to cart: %w", req.ProductID, err)
	}
	util.CartAddsTotal.WithLabelValues("success").Inc()

	if err := h.events.PublishCartItemAdded(ctx, h.owner.userID, req.ProductID, req.Quantity); err != nil {
		h.logger.Warn("Failed to publish cart event", zap.Error(err))
	}

	// The add went through; a failed refetch only shows on the snapshot.
	snap, _ := h.Fetch(ctx)
	return snap, nil
}
