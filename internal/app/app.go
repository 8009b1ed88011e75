// Package app wires the storefront together: configuration, storage
// backends, domain services, the HTTP server, and graceful shutdown.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/catalog"
	"github.com/xenking/storefront/internal/domain/checkout"
	"github.com/xenking/storefront/internal/domain/order"
	"github.com/xenking/storefront/internal/handler"
	"github.com/xenking/storefront/internal/storage/memory"
	"github.com/xenking/storefront/internal/storage/postgres"
	storeredis "github.com/xenking/storefront/internal/storage/redis"
	"github.com/xenking/storefront/pkg/health"
	"github.com/xenking/storefront/pkg/httpmiddleware"
)

// backends groups the storage implementations selected by Config.Storage.
type backends struct {
	snapshots cart.SnapshotRepository
	products  catalog.Repository
	orders    order.Repository
	close     func()
}

// defaultCatalog is the built-in product list served by the memory and redis
// backends, which have no catalog storage of their own.
func defaultCatalog() []catalog.Product {
	p := func(id, name, price, image string) catalog.Product {
		return catalog.Product{
			ID:       id,
			Name:     name,
			Price:    decimal.RequireFromString(price),
			ImageURL: image,
		}
	}
	return []catalog.Product{
		p("classic-mug", "Classic Mug", "9.99", "/images/classic-mug.jpg"),
		p("dinner-plate", "Dinner Plate", "14.50", "/images/dinner-plate.jpg"),
		p("soup-bowl", "Soup Bowl", "7.25", "/images/soup-bowl.jpg"),
		p("ceramic-vase", "Ceramic Vase", "21.00", "/images/ceramic-vase.jpg"),
		p("teapot", "Teapot", "24.99", "/images/teapot.jpg"),
		p("serving-tray", "Serving Tray", "17.80", "/images/serving-tray.jpg"),
	}
}

func openBackends(ctx context.Context, cfg *Config, healthSvc *health.Health) (*backends, error) {
	switch cfg.Storage {
	case StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "create db pool")
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "run migrations")
		}
		healthSvc.AddReadinessCheck("postgres", 5*time.Second, health.PingCheck(pool.Ping))

		return &backends{
			snapshots: postgres.NewSnapshotStore(pool),
			products:  postgres.NewCatalogRepository(pool),
			orders:    postgres.NewOrderRepository(pool),
			close:     pool.Close,
		}, nil

	case StorageRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrap(err, "ping redis")
		}
		healthSvc.AddReadinessCheck("redis", 5*time.Second, health.PingCheck(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}))

		return &backends{
			snapshots: storeredis.NewSnapshotStore(client),
			products:  memory.NewCatalogRepository(defaultCatalog()),
			orders:    memory.NewOrderRepository(),
			close:     func() { _ = client.Close() },
		}, nil

	default:
		return &backends{
			snapshots: memory.NewSnapshotStore(),
			products:  memory.NewCatalogRepository(defaultCatalog()),
			orders:    memory.NewOrderRepository(),
			close:     func() {},
		}, nil
	}
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("storage", cfg.Storage),
	)

	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	store, err := openBackends(ctx, cfg, healthSvc)
	if err != nil {
		return err
	}
	defer store.close()

	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Domain services.
	carts := cart.NewStore(store.snapshots)
	gateway := checkout.NewSimulatedGateway(cfg.Payment.Delay, cfg.Payment.SuccessRate)
	checkoutSvc := checkout.NewService(carts, store.orders, gateway)

	// Mux: health endpoints + API routes on one server.
	mux := http.NewServeMux()
	healthSvc.Register(mux)
	handler.NewHandler(carts, store.products, checkoutSvc).Register(mux)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		// The simulated gateway holds the payment request for its full
		// processing delay, so the write timeout must exceed it.
		WriteTimeout:   cfg.Payment.Delay + 10*time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
		Addr:           cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("storefront-api", m),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
