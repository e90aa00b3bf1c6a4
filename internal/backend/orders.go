package backend

import (
	"context"
	"net/http"
	"strconv"

	"storefront/internal/models"
)

// OrdersAPI is the facade over the orders service.
type OrdersAPI struct {
	client *Client
}

func NewOrdersAPI(client *Client) *OrdersAPI {
	return &OrdersAPI{client: client}
}

// List returns the authenticated user's orders with their items.
func (o *OrdersAPI) List(ctx context.Context) ([]models.OrderWithItems, error) {
	var out []models.OrderWithItems
	err := o.client.fetch(ctx, call{
		op:     "list",
		method: http.MethodGet,
		path:   "/",
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.OrderWithItems{}
	}
	return out, nil
}

// Cancel asks the orders service to cancel one order.
func (o *OrdersAPI) Cancel(ctx context.Context, orderID int64) error {
	_, err := o.client.send(ctx, call{
		op:         "cancel",
		method:     http.MethodPost,
		path:       "/{id}/cancel",
		pathParams: map[string]string{"id": strconv.FormatInt(orderID, 10)},
	})
	return err
}
