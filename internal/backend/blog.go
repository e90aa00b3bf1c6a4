package backend

import (
	"context"
	"net/http"
	"strconv"

	"storefront/internal/models"
)

// BlogQuery selects one page of published posts.
type BlogQuery struct {
	Page       int
	Size       int
	Keyword    string
	CategoryID int64
}

// BlogAPI is the facade over the blog service. Its payloads are not
// wrapped in a data envelope.
type BlogAPI struct {
	client *Client
}

func NewBlogAPI(client *Client) *BlogAPI {
	return &BlogAPI{client: client}
}

func (b *BlogAPI) ListPosts(ctx context.Context, q BlogQuery) (*models.BlogPage, error) {
	params := map[string]string{
		"page":    strconv.Itoa(q.Page),
		"size":    strconv.Itoa(q.Size),
		"keyword": q.Keyword,
	}
	if q.CategoryID != 0 {
		params["categoryId"] = strconv.FormatInt(q.CategoryID, 10)
	}

	var out models.BlogPage
	err := b.client.fetchRaw(ctx, call{
		op:          "list_posts",
		method:      http.MethodGet,
		path:        "/blogs",
		queryParams: params,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BlogAPI) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var out models.BlogPost
	err := b.client.fetchRaw(ctx, call{
		op:         "get_by_slug",
		method:     http.MethodGet,
		path:       "/blogs/{slug}",
		pathParams: map[string]string{"slug": slug},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BlogAPI) Categories(ctx context.Context) ([]models.BlogCategory, error) {
	var out []models.BlogCategory
	err := b.client.fetchRaw(ctx, call{op: "categories", method: http.MethodGet, path: "/categories"}, &out)
	return out, err
}

func (b *BlogAPI) Tags(ctx context.Context) ([]models.BlogTag, error) {
	var out []models.BlogTag
	err := b.client.fetchRaw(ctx, call{op: "tags", method: http.MethodGet, path: "/tags"}, &out)
	return out, err
}
