package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/harithaceylon/storefront-backend/api/routes"
	cartsvc "github.com/harithaceylon/storefront-backend/internal/cart"
	checkoutsvc "github.com/harithaceylon/storefront-backend/internal/checkout"
	"github.com/harithaceylon/storefront-backend/internal/orders"
	product "github.com/harithaceylon/storefront-backend/internal/products"
	"github.com/harithaceylon/storefront-backend/pkg/config"
	"github.com/harithaceylon/storefront-backend/pkg/db"
	"github.com/harithaceylon/storefront-backend/pkg/logger"
	"github.com/harithaceylon/storefront-backend/pkg/metrics"
	"github.com/harithaceylon/storefront-backend/pkg/migrate"
	"github.com/harithaceylon/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	snapshots, err := cartsvc.NewRedisSnapshots(redisClient, cfg.Cart.SnapshotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot store", err)
		os.Exit(1)
	}

	productRepo := product.NewRepository(dbClient.DB())

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Products:           productRepo,
		Snapshots:          snapshots,
		DefaultMaxQuantity: cfg.Cart.DefaultMaxQuantity,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	productService, err := product.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	ordersClient, err := orders.NewClient(cfg.Orders)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders client", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Carts:  cartService,
		Orders: ordersClient,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DBPinger:        dbClient,
			RedisPinger:     redisClient,
			MetricsRegistry: registry,
			HTTPMetrics:     metrics.NewHTTPMetrics(registry),
			CartService:     cartService,
			ProductService:  productService,
			CheckoutService: checkoutService,
		}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "error shutting down http server", err)
	}

	// Flush live carts to redis so sessions survive the restart.
	if err := cartService.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "error flushing cart sessions", err)
	}

	logg.Info(ctx, "api server stopped")
}
