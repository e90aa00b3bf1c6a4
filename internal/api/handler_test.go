package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront/internal/backend"
	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducts struct {
	products []models.Product
	err      error
}

func (s *stubProducts) List(ctx context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubProducts) Get(ctx context.Context, id int64) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, &backend.Error{Kind: backend.KindNotFound, Status: 404, Message: "Produk tidak ditemukan"}
}

func (s *stubProducts) ListByCategory(ctx context.Context, slug string) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubProducts) SearchByName(ctx context.Context, q string) ([]models.Product, error) {
	return []models.Product{}, s.err
}

type stubCart struct {
	mu    sync.Mutex
	items []models.CartItem
	calls int
}

func (s *stubCart) Get(ctx context.Context) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return &models.Cart{Items: append([]models.CartItem{}, s.items...)}, nil
}

func (s *stubCart) AddItem(ctx context.Context, productID int64, quantity int, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.items = append(s.items, models.CartItem{ProductID: productID, Price: 50000, Quantity: quantity})
	return nil
}

type stubOrders struct {
	mu     sync.Mutex
	status models.OrderStatus
}

func (s *stubOrders) List(ctx context.Context) ([]models.OrderWithItems, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []models.OrderWithItems{{Order: models.Order{ID: 11, Status: s.status, TotalPrice: 50000}}}, nil
}

func (s *stubOrders) Cancel(ctx context.Context, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = models.OrderStatusCanceled
	return nil
}

type stubAccounts struct{}

func (stubAccounts) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	if creds.Password != "secret" {
		return nil, &backend.Error{Kind: backend.KindUnauthorized, Status: 401, Message: "Email atau password salah"}
	}
	return &models.LoginResult{Token: "opaque-token", User: models.User{ID: 7, Name: "Budi", Email: creds.Email}}, nil
}

func (stubAccounts) Logout(ctx context.Context) error { return nil }

func (stubAccounts) Profile(ctx context.Context) (*models.User, error) {
	return &models.User{ID: 7, Name: "Budi"}, nil
}

type stubStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func (s *stubStore) SaveSession(ctx context.Context, sess *models.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id], nil
}

func (s *stubStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type stubBlog struct{ err error }

func (s stubBlog) ListPosts(ctx context.Context, q backend.BlogQuery) (*models.BlogPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BlogPage{Content: []models.BlogPost{{Slug: "halo", Title: "Halo"}}}, nil
}

func (s stubBlog) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return &models.BlogPost{Slug: slug}, s.err
}

func (s stubBlog) Categories(ctx context.Context) ([]models.BlogCategory, error) { return nil, s.err }

func (s stubBlog) Tags(ctx context.Context) ([]models.BlogTag, error) { return nil, s.err }

type fixture struct {
	router   *gin.Engine
	products *stubProducts
	cart     *stubCart
	orders   *stubOrders
	blog     *stubBlog
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)

	f := &fixture{
		products: &stubProducts{products: []models.Product{{ID: 1, Name: "RG Zaku", Price: 50000, Stock: 5}}},
		cart:     &stubCart{},
		orders:   &stubOrders{status: models.OrderStatusPendingPayment},
		blog:     &stubBlog{},
	}

	reg := service.NewRegistry(f.cart, f.orders, nil)
	sessions := service.NewSessionService(stubAccounts{}, &stubStore{sessions: map[string]*models.Session{}}, reg, nil, time.Hour)
	h := NewHandler(
		sessions,
		reg,
		service.NewCatalogService(f.products, catalog.Default()),
		service.NewBlogService(f.blog, 3),
		Options{CookieName: "tokohobby_session", SessionTTL: time.Hour, LoginPath: "/login", BlogPublicURL: "http://localhost:81"},
		nil,
	)

	f.router = gin.New()
	h.SetupRoutes(f.router)
	return f
}

func (f *fixture) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := f.do(http.MethodPost, "/api/v1/storefront/login", `{"email":"budi@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "tokohobby_session" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestAddToCartAnonymousRedirects(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/v1/storefront/cart/items?from=/product/1", `{"product_id":1,"quantity":1}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login?from=%2Fproduct%2F1", decode(t, w)["redirect_to"])
	assert.Zero(t, f.cart.calls)
}

func TestLoginRejected(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodPost, "/api/v1/storefront/login", `{"email":"budi@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Email atau password salah", body["error"])
	assert.Nil(t, body["redirect_to"])
}

func TestLoginBadBody(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodPost, "/api/v1/storefront/login", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToCartReconciles(t *testing.T) {
	f := newFixture()
	cookie := f.login(t)

	w := f.do(http.MethodPost, "/api/v1/storefront/cart/items", `{"product_id":1,"quantity":2}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	cart := decode(t, w)["cart"].(map[string]interface{})
	assert.Equal(t, float64(2), cart["total_items"])
	assert.Equal(t, "Rp 100.000", cart["subtotal_formatted"])
	assert.Equal(t, true, cart["can_checkout"])

	w = f.do(http.MethodGet, "/api/v1/storefront/cart", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["total_items"])
}

func TestAddToCartAboveStock(t *testing.T) {
	f := newFixture()
	cookie := f.login(t)

	w := f.do(http.MethodPost, "/api/v1/storefront/cart/items", `{"product_id":1,"quantity":6}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, f.cart.calls)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture()
	cookie := f.login(t)

	w := f.do(http.MethodPost, "/api/v1/storefront/orders/11/cancel", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	orders := decode(t, w)["orders"].(map[string]interface{})["orders"].([]interface{})
	status := orders[0].(map[string]interface{})["status"].(map[string]interface{})
	assert.Equal(t, "Dibatalkan", status["label"])

	w = f.do(http.MethodPost, "/api/v1/storefront/orders/11/cancel", "", cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCategoryAndSearch(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/storefront/categories/model-kits", "")
	require.Equal(t, http.StatusOK, w.Code)
	listing := decode(t, w)["listing"].(map[string]interface{})
	assert.Equal(t, "loaded", listing["state"])

	w = f.do(http.MethodGet, "/api/v1/storefront/categories/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodGet, "/api/v1/storefront/search/%20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/api/v1/storefront/search/zaku", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "zaku", body["query"])
	assert.Equal(t, "empty", body["listing"].(map[string]interface{})["state"])
}

func TestListingErrorState(t *testing.T) {
	f := newFixture()
	f.products.err = &backend.Error{Kind: backend.KindTransport, Message: "layanan tidak dapat dihubungi"}

	w := f.do(http.MethodGet, "/api/v1/storefront/categories/model-kits", "")
	require.Equal(t, http.StatusOK, w.Code)
	listing := decode(t, w)["listing"].(map[string]interface{})
	assert.Equal(t, "error", listing["state"])
	assert.Equal(t, "layanan tidak dapat dihubungi", listing["error"])

	w = f.do(http.MethodGet, "/api/v1/storefront/products/1", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestProductDetail(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/storefront/products/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rp 50.000", decode(t, w)["price"])

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/v1/storefront/products/9", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/storefront/products/abc", "").Code)
}

func TestHomeHidesFailedBlog(t *testing.T) {
	f := newFixture()
	f.blog.err = backend.ErrTransport

	w := f.do(http.MethodGet, "/api/v1/storefront/home", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["blog"].(map[string]interface{})["visible"])
	assert.Len(t, body["categories"], catalog.Default().Len())
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture()
	cookie := f.login(t)

	w := f.do(http.MethodGet, "/api/v1/storefront/me", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/api/v1/storefront/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/v1/storefront/me", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTags(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/api/v1/storefront/tags?prefix=zzzz-none", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["tags"])
}

func TestLocalPath(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"", "/"},
		{"/cart", "/cart"},
		{"/product/1?tab=review", "/product/1?tab=review"},
		{"//evil.example", "/"},
		{"/\\evil.example", "/"},
		{"/%2F/evil.example", "/"},
		{"https://evil.example", "/"},
		{"evil.example", "/"},
		{"javascript:alert(1)", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			assert.Equal(t, tt.want, localPath(tt.from))
		})
	}
}

func TestLoginRedirectStaysOnSite(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/v1/storefront/login?from=/%5Cevil.example", `{"email":"budi@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/", decode(t, w)["redirect_to"])

	w = f.do(http.MethodPost, "/api/v1/storefront/login?from=/cart", `{"email":"budi@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/cart", decode(t, w)["redirect_to"])
}
