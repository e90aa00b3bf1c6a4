package backend

import (
	"context"
	"net/http"
	"strconv"

	"storefront/internal/models"
)

// CartAPI is the facade over the cart service. All calls need a token.
type CartAPI struct {
	client *Client
}

func NewCartAPI(client *Client) *CartAPI {
	return &CartAPI{client: client}
}

type addItemBody struct {
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// Get returns the authenticated user's cart.
func (c *CartAPI) Get(ctx context.Context) (*models.Cart, error) {
	var out models.Cart
	err := c.client.fetch(ctx, call{
		op:     "get",
		method: http.MethodGet,
		path:   "/",
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []models.CartItem{}
	}
	return &out, nil
}

// AddItem adds quantity units of a product with an optional note.
func (c *CartAPI) AddItem(ctx context.Context, productID int64, quantity int, note string) error {
	_, err := c.client.send(ctx, call{
		op:         "add_item",
		method:     http.MethodPost,
		path:       "/add/{id}",
		pathParams: map[string]string{"id": strconv.FormatInt(productID, 10)},
		body:       addItemBody{Quantity: quantity, Description: note},
	})
	return err
}
