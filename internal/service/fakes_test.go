package service

import (
	"context"
	"sync"
	"time"

	"storefront/internal/backend"
	"storefront/internal/models"
)

type addCall struct {
	token     string
	productID int64
	quantity  int
	note      string
}

type fakeCart struct {
	mu     sync.Mutex
	gets   int
	tokens []string
	adds   []addCall
	getFn  func(n int) (*models.Cart, error)
	addErr error
}

func (f *fakeCart) Get(ctx context.Context) (*models.Cart, error) {
	f.mu.Lock()
	f.gets++
	n := f.gets
	f.tokens = append(f.tokens, backend.TokenFrom(ctx))
	fn := f.getFn
	f.mu.Unlock()

	if fn == nil {
		return &models.Cart{Items: []models.CartItem{}}, nil
	}
	return fn(n)
}

func (f *fakeCart) AddItem(ctx context.Context, productID int64, quantity int, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds = append(f.adds, addCall{backend.TokenFrom(ctx), productID, quantity, note})
	return f.addErr
}

func (f *fakeCart) calls() (gets, adds int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets, len(f.adds)
}

type fakeOrders struct {
	mu        sync.Mutex
	lists     int
	cancelled []int64
	listFn    func(n int) ([]models.OrderWithItems, error)
	cancelErr error
}

func (f *fakeOrders) List(ctx context.Context) ([]models.OrderWithItems, error) {
	f.mu.Lock()
	f.lists++
	n := f.lists
	fn := f.listFn
	f.mu.Unlock()

	if fn == nil {
		return []models.OrderWithItems{}, nil
	}
	return fn(n)
}

func (f *fakeOrders) Cancel(ctx context.Context, orderID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, orderID)
	return f.cancelErr
}

type fakeProducts struct {
	mu       sync.Mutex
	calls    []string
	products []models.Product
	err      error
}

func (f *fakeProducts) record(c string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeProducts) List(ctx context.Context) ([]models.Product, error) {
	return f.record("list")
}

func (f *fakeProducts) Get(ctx context.Context, id int64) (*models.Product, error) {
	ps, err := f.record("get")
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, &backend.Error{Service: "products", Op: "get", Kind: backend.KindNotFound, Status: 404, Message: "not found"}
}

func (f *fakeProducts) ListByCategory(ctx context.Context, slug string) ([]models.Product, error) {
	return f.record("category:" + slug)
}

func (f *fakeProducts) SearchByName(ctx context.Context, query string) ([]models.Product, error) {
	return f.record("search:" + query)
}

type fakeAccounts struct {
	mu       sync.Mutex
	result   *models.LoginResult
	loginErr error
	logouts  []string
	user     *models.User
}

func (f *fakeAccounts) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.result, nil
}

func (f *fakeAccounts) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts = append(f.logouts, backend.TokenFrom(ctx))
	return nil
}

func (f *fakeAccounts) Profile(ctx context.Context) (*models.User, error) {
	if backend.TokenFrom(ctx) == "" {
		return nil, backend.ErrUnauthorized
	}
	return f.user, nil
}

type memStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	ttls     map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]*models.Session{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) SaveSession(ctx context.Context, s *models.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	m.ttls[s.ID] = ttl
	return nil
}

func (m *memStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) DeleteSession(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) add(e string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) PublishCartItemAdded(ctx context.Context, userID, productID int64, quantity int) error {
	return p.add(models.EventTypeCartItemAdded)
}

func (p *recordingPublisher) PublishOrderCancelRequested(ctx context.Context, userID, orderID int64) error {
	return p.add(models.EventTypeOrderCancelRequest)
}

func (p *recordingPublisher) PublishSessionEvent(ctx context.Context, eventType string, userID int64, sessionID string) error {
	return p.add(eventType)
}

type fakeBlog struct {
	page    *models.BlogPage
	err     error
	queries []backend.BlogQuery
}

func (f *fakeBlog) ListPosts(ctx context.Context, q backend.BlogQuery) (*models.BlogPage, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeBlog) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlogPost{Slug: slug}, nil
}

func (f *fakeBlog) Categories(ctx context.Context) ([]models.BlogCategory, error) {
	return []models.BlogCategory{}, f.err
}

func (f *fakeBlog) Tags(ctx context.Context) ([]models.BlogTag, error) {
	return []models.BlogTag{}, f.err
}

func cartOf(items ...models.CartItem) *models.Cart {
	return &models.Cart{Items: items}
}
