package backend

import (
	"context"
	"net/http"
	"strconv"

	"storefront/internal/models"
	"storefront/internal/util"
)

// ProductsAPI is the facade over the products service.
type ProductsAPI struct {
	client *Client
}

func NewProductsAPI(client *Client) *ProductsAPI {
	return &ProductsAPI{client: client}
}

func (p *ProductsAPI) List(ctx context.Context) ([]models.Product, error) {
	return p.list(ctx, call{op: "list", method: http.MethodGet, path: "/"})
}

func (p *ProductsAPI) Get(ctx context.Context, id int64) (*models.Product, error) {
	var out *models.Product
	err := p.client.fetch(ctx, call{
		op:         "get",
		method:     http.MethodGet,
		path:       "/{id}",
		pathParams: map[string]string{"id": strconv.FormatInt(id, 10)},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		util.BackendErrorsTotal.WithLabelValues(p.client.service, string(KindNotFound)).Inc()
		return nil, &Error{
			Service: p.client.service,
			Op:      "get",
			Kind:    KindNotFound,
			Message: "produk tidak ditemukan",
		}
	}
	return out, nil
}

func (p *ProductsAPI) ListByCategory(ctx context.Context, slug string) ([]models.Product, error) {
	return p.list(ctx, call{
		op:         "list_by_category",
		method:     http.MethodGet,
		path:       "/category/{slug}",
		pathParams: map[string]string{"slug": slug},
	})
}

func (p *ProductsAPI) SearchByName(ctx context.Context, query string) ([]models.Product, error) {
	return p.list(ctx, call{
		op:         "search_by_name",
		method:     http.MethodGet,
		path:       "/name/{query}",
		pathParams: map[string]string{"query": query},
	})
}

// list never returns a nil slice on success so callers can tell an empty
// result from a failure by err alone.
func (p *ProductsAPI) list(ctx context.Context, cl call) ([]models.Product, error) {
	var out []models.Product
	if err := p.client.fetch(ctx, cl, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Product{}
	}
	return out, nil
}
