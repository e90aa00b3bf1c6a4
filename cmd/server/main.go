package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	"storefront/internal/api"
	"storefront/internal/backend"
	"storefront/internal/broker"
	"storefront/internal/catalog"
	"storefront/internal/redisclient"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/util"
	"storefront/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront")

	tp, err := util.InitTracer("storefront", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("Error shutting down tracer", zap.Error(err))
		}
	}()

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	logger.Info("Redis connected", zap.String("addr", cfg.Redis.Addr))

	categories := loadCategories(context.Background(), cfg.Database, logger)

	accounts := backend.NewAccountsAPI(backend.NewClient("accounts", cfg.Backend.AccountsURL, cfg.Backend.Timeout, true))
	products := backend.NewProductsAPI(backend.NewClient("products", cfg.Backend.ProductsURL, cfg.Backend.Timeout, false))
	carts := backend.NewCartAPI(backend.NewClient("cart", cfg.Backend.CartURL, cfg.Backend.Timeout, true))
	orders := backend.NewOrdersAPI(backend.NewClient("orders", cfg.Backend.OrdersURL, cfg.Backend.Timeout, true))
	blog := backend.NewBlogAPI(backend.NewClient("blog", cfg.Backend.BlogURL, cfg.Backend.Timeout, false))

	var producer *broker.Producer
	if cfg.Kafka.Enabled() {
		producer = broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicActivity)
		defer producer.Close()
		logger.Info("Kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	}
	eventPublisher := broker.NewEventPublisher(producer)

	registry := service.NewRegistry(carts, orders, eventPublisher)
	sessionService := service.NewSessionService(accounts, redisClient, registry, eventPublisher, cfg.Session.TTL)
	catalogService := service.NewCatalogService(products, categories)
	blogService := service.NewBlogService(blog, cfg.Blog.PreviewSize)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	go registry.Run(workerCtx, time.Minute, cfg.Session.StateIdle)

	var orderWorker *worker.OrderWorker
	if cfg.Kafka.Enabled() {
		orderConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrderEvents, cfg.Kafka.ConsumerGroup)
		orderWorker = worker.NewOrderWorker(orderConsumer, registry)
		go func() {
			if err := orderWorker.Start(workerCtx); err != nil && workerCtx.Err() == nil {
				logger.Error("Order worker error", zap.Error(err))
			}
		}()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(sessionService, registry, catalogService, blogService, api.Options{
		CookieName:    cfg.Session.CookieName,
		CookieSecure:  cfg.Session.Secure,
		SessionTTL:    cfg.Session.TTL,
		LoginPath:     cfg.Session.LoginPath,
		BlogPublicURL: cfg.Blog.PublicURL,
	}, redisClient.Ping)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Server forced to shutdown", zap.Error(err))
	}

	workerCancel()
	if orderWorker != nil {
		if err := orderWorker.Stop(); err != nil {
			logger.Warn("Error stopping order worker", zap.Error(err))
		}
	}

	logger.Info("Server exited")
}

// loadCategories reads the category catalog from Postgres when a database is
// configured, seeding it with the built-in categories on first start. Any
// failure falls back to the built-in set.
func loadCategories(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) *catalog.Catalog {
	if cfg.URL == "" {
		return catalog.Default()
	}

	db, err := store.NewStore(cfg.URL)
	if err != nil {
		logger.Warn("Category database unavailable, using built-in categories", zap.Error(err))
		return catalog.Default()
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Warn("Category migration failed, using built-in categories", zap.Error(err))
		return catalog.Default()
	}
	if seeded, err := db.SeedCategories(ctx, catalog.DefaultCategories); err != nil {
		logger.Warn("Category seed failed", zap.Error(err))
	} else if seeded {
		logger.Info("Seeded category table", zap.Int("count", len(catalog.DefaultCategories)))
	}

	cats, err := db.ListCategories(ctx)
	if err != nil || len(cats) == 0 {
		logger.Warn("Category load failed, using built-in categories", zap.Error(err))
		return catalog.Default()
	}
	logger.Info("Categories loaded from database", zap.Int("count", len(cats)))
	return catalog.New(cats)
}
