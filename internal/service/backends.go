package service

import (
	"context"
	"time"

	"storefront/internal/backend"
	"storefront/internal/models"
)

// The interfaces below are satisfied by the facades in internal/backend and
// by fakes in tests.

type ProductCatalog interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	ListByCategory(ctx context.Context, slug string) ([]models.Product, error)
	SearchByName(ctx context.Context, query string) ([]models.Product, error)
}

type CartBackend interface {
	Get(ctx context.Context) (*models.Cart, error)
	AddItem(ctx context.Context, productID int64, quantity int, note string) error
}

type OrderBackend interface {
	List(ctx context.Context) ([]models.OrderWithItems, error)
	Cancel(ctx context.Context, orderID int64) error
}

type AccountBackend interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
}

type BlogBackend interface {
	ListPosts(ctx context.Context, q backend.BlogQuery) (*models.BlogPage, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Categories(ctx context.Context) ([]models.BlogCategory, error)
	Tags(ctx context.Context) ([]models.BlogTag, error)
}

// SessionStore persists sessions between requests.
type SessionStore interface {
	SaveSession(ctx context.Context, session *models.Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// ActivityPublisher emits storefront activity. Failures are logged by the
// caller and never fail the user's operation.
type ActivityPublisher interface {
	PublishCartItemAdded(ctx context.Context, userID, productID int64, quantity int) error
	PublishOrderCancelRequested(ctx context.Context, userID, orderID int64) error
	PublishSessionEvent(ctx context.Context, eventType string, userID int64, sessionID string) error
}

type nopPublisher struct{}

func (nopPublisher) PublishCartItemAdded(context.Context, int64, int64, int) error { return nil }
func (nopPublisher) PublishOrderCancelRequested(context.Context, int64, int64) error { return nil }
func (nopPublisher) PublishSessionEvent(context.Context, string, int64, string) error { return nil }

func publisherOrNop(p ActivityPublisher) ActivityPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
