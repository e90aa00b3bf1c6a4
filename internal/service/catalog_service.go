package service

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type ListingState string

const (
	ListingLoaded ListingState = "loaded"
	ListingEmpty  ListingState = "empty"
	ListingError  ListingState = "error"
)

// Listing is one product listing. Products is nil exactly when State is
// ListingError.
type Listing struct {
	State    ListingState
	Products []models.Product
	Err      error
}

func newListing(products []models.Product, err error) Listing {
	switch {
	case err != nil:
		return Listing{State: ListingError, Err: err}
	case len(products) == 0:
		return Listing{State: ListingEmpty, Products: []models.Product{}}
	default:
		return Listing{State: ListingLoaded, Products: products}
	}
}

// CatalogService serves category pages, search and product details. The
// products service's order and filtering are kept as-is.
type CatalogService struct {
	products   ProductCatalog
	categories *catalog.Catalog
	logger     *zap.Logger
}

func NewCatalogService(products ProductCatalog, categories *catalog.Catalog) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		logger:     util.GetLogger(),
	}
}

func (s *CatalogService) Categories() []catalog.Category {
	return s.categories.All()
}

// All lists every product.
func (s *CatalogService) All(ctx context.Context) Listing {
	ctx, span := util.StartSpan(ctx, "CatalogService.All")
	defer span.End()

	products, err := s.products.List(ctx)
	return s.record("all", span, newListing(products, err))
}

// ByCategory lists the products of the category with slug. Unknown slugs
// fail with ErrCategoryNotFound without asking the products service.
func (s *CatalogService) ByCategory(ctx context.Context, slug string) (catalog.Category, Listing, error) {
	cat, ok := s.categories.BySlug(slug)
	if !ok {
		return catalog.Category{}, Listing{}, fmt.Errorf("%q: %w", slug, ErrCategoryNotFound)
	}

	ctx, span := util.StartSpan(ctx, "CatalogService.ByCategory", attribute.String("slug", slug))
	defer span.End()

	products, err := s.products.ListByCategory(ctx, slug)
	return cat, s.record("category", span, newListing(products, err)), nil
}

// Search lists products whose name matches query. It returns the trimmed
// term it searched for.
func (s *CatalogService) Search(ctx context.Context, query string) (string, Listing, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return "", Listing{}, ErrEmptyQuery
	}

	ctx, span := util.StartSpan(ctx, "CatalogService.Search", attribute.String("query", term))
	defer span.End()

	products, err := s.products.SearchByName(ctx, term)
	return term, s.record("search", span, newListing(products, err)), nil
}

// Product returns a single product.
func (s *CatalogService) Product(ctx context.Context, id int64) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.Product", attribute.Int64("product_id", id))
	defer span.End()

	p, err := s.products.Get(ctx, id)
	if err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

func (s *CatalogService) record(kind string, span trace.Span, l Listing) Listing {
	util.ListingsTotal.WithLabelValues(kind, string(l.State)).Inc()
	if l.Err != nil {
		util.RecordError(span, l.Err)
		s.logger.Warn("Product listing failed", zap.String("kind", kind), zap.Error(l.Err))
	}
	return l
}
