package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/makishop/storefront/internal/backend"
	"github.com/makishop/storefront/internal/bus"
	"github.com/makishop/storefront/internal/cart"
	"github.com/makishop/storefront/internal/cartstore"
	"github.com/makishop/storefront/internal/checkout"
	"github.com/makishop/storefront/internal/config"
	"github.com/makishop/storefront/internal/httpapi"
	"github.com/makishop/storefront/internal/journal"
)

func main() {
	cfg := config.Load()

	signals := bus.New()

	store, cleanup, err := buildStore(cfg, signals)
	if err != nil {
		log.Fatalf("failed to set up cart store: %v", err)
	}
	defer cleanup()

	cartSvc := cart.NewService(store)
	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.BackendTimeout)
	if err := cartSvc.Reload(initCtx); err != nil {
		log.Printf("initial cart load failed, starting empty: %v", err)
	}
	cancelInit()

	// Re-read the snapshot whenever another surface mutates it. The bus
	// delivers synchronously and mutations publish while the view-model
	// holds its lock, so the reload runs on its own goroutine.
	signals.Subscribe(bus.SignalCartChanged, func() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout)
			defer cancel()
			if err := cartSvc.Reload(ctx); err != nil {
				log.Printf("cart reload on change signal failed: %v", err)
			}
		}()
	})

	ordersAPI := backend.NewClient(cfg.OrdersBaseURL, cfg.BackendTimeout)
	menuAPI := backend.NewClient(cfg.MenuBaseURL, cfg.BackendTimeout)
	inventoryAPI := backend.NewClient(cfg.InventoryBaseURL, cfg.BackendTimeout)

	users := backend.NewUsersClient(ordersAPI)
	orders := backend.NewOrdersClient(ordersAPI)
	menu := backend.NewMenuClient(menuAPI)
	inventory := backend.NewInventoryClient(inventoryAPI)

	var recorder checkout.Recorder = checkout.NopRecorder{}
	var journalReader httpapi.JournalReader
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			log.Fatalf("failed to open checkout journal: %v", err)
		}
		defer j.Close()
		if err := j.RunMigrations(cfg.MigrationsDirPath); err != nil {
			log.Fatalf("failed to migrate checkout journal: %v", err)
		}
		recorder = j
		journalReader = j
	}

	checkoutSvc := checkout.NewService(users, orders, cartSvc, recorder, checkout.Config{
		DefaultBuyerID:        cfg.DefaultBuyerID,
		StrictBuyerResolution: cfg.StrictBuyerResolution,
		CallTimeout:           cfg.BackendTimeout,
	})

	if len(cfg.KafkaBrokers) > 0 {
		bridge := bus.NewKafkaBridge(signals, cfg.KafkaTopic, cfg.KafkaBrokers...)
		bridgeCtx, stopBridge := context.WithCancel(context.Background())
		defer stopBridge()
		defer bridge.Close()
		go bridge.Run(bridgeCtx)
	}

	router := httpapi.NewRouter(
		httpapi.NewCartHandler(cartSvc, menu, signals),
		httpapi.NewMenuHandler(menu),
		httpapi.NewCheckoutHandler(checkoutSvc),
		httpapi.NewAdminHandler(orders, inventory, menu, journalReader),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

// buildStore selects the snapshot backend and wraps it with change
// notifications. The returned cleanup closes any underlying connection.
func buildStore(cfg *config.Config, signals *bus.Bus) (cartstore.Store, func(), error) {
	switch cfg.CartBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Printf("failed to close redis client: %v", err)
			}
		}
		return cartstore.WithNotifications(cartstore.NewRedisStore(client, cfg.CartProfile), signals), cleanup, nil

	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := cartstore.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Client().Disconnect(ctx); err != nil {
				log.Printf("failed to disconnect mongo: %v", err)
			}
		}
		return cartstore.WithNotifications(cartstore.NewMongoStore(db, cfg.CartProfile), signals), cleanup, nil

	default:
		fileStore, err := cartstore.NewFileStore(cfg.CartDir)
		if err != nil {
			return nil, nil, err
		}
		return cartstore.WithNotifications(fileStore, signals), func() {}, nil
	}
}
