package api

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/service"
	"storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options are the HTTP-facing settings of the storefront.
type Options struct {
	CookieName    string
	CookieSecure  bool
	SessionTTL    time.Duration
	LoginPath     string
	BlogPublicURL string
}

// Handler contains HTTP handlers
type Handler struct {
	sessions *service.SessionService
	registry *service.Registry
	catalog  *service.CatalogService
	blog     *service.BlogService
	opts     Options
	ready    func(ctx context.Context) error
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler. ready backs the readiness probe and
// may be nil.
func NewHandler(
	sessions *service.SessionService,
	registry *service.Registry,
	catalog *service.CatalogService,
	blog *service.BlogService,
	opts Options,
	ready func(ctx context.Context) error,
) *Handler {
	return &Handler{
		sessions: sessions,
		registry: registry,
		catalog:  catalog,
		blog:     blog,
		opts:     opts,
		ready:    ready,
		logger:   util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1/storefront")
	v1.Use(h.sessionMiddleware())
	{
		v1.GET("/home", h.home)
		v1.GET("/categories", h.categories)
		v1.GET("/categories/:slug", h.categoryPage)
		v1.GET("/search/:query", h.search)
		v1.GET("/products/:id", h.productDetail)
		v1.GET("/tags", h.tags)

		v1.POST("/login", h.login)
		v1.POST("/logout", h.logout)
		v1.GET("/me", h.me)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addToCart)
		v1.GET("/cart/stream", h.cartStream)

		v1.GET("/orders", h.getOrders)
		v1.POST("/orders/:id/cancel", h.cancelOrder)

		v1.GET("/blogs", h.blogPage)
		v1.GET("/blogs/:slug", h.blogPost)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports ready once the session store answers.
func (h *Handler) readinessCheck(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}
