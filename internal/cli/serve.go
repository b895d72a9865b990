// Package cli implements the command line entrypoints.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gostorefront/cart-backend/internal/adapters/catalog"
	"github.com/gostorefront/cart-backend/internal/api"
	"github.com/gostorefront/cart-backend/internal/application/service"
	"github.com/gostorefront/cart-backend/internal/application/views"
	"github.com/gostorefront/cart-backend/internal/domain/checkout"
	"github.com/gostorefront/cart-backend/internal/infrastructure/config"
	"github.com/gostorefront/cart-backend/internal/infrastructure/logging"
	"github.com/gostorefront/cart-backend/internal/infrastructure/pubsub"
	"github.com/gostorefront/cart-backend/internal/infrastructure/storage"
)

const shutdownTimeout = 30 * time.Second

// RunServe starts the API server and blocks until SIGINT/SIGTERM.
func RunServe(flags *ServeFlags) error {
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)
	if flags.Port > 0 {
		cfg.Server.Port = flags.Port
	}
	if flags.Verbose {
		cfg.Observability.Logging.Level = "debug"
	}

	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")

	store, err := openCartStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open cart store: %w", err)
	}
	defer store.Close()

	cat, err := catalog.Load(cfg.Catalog.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		"products", cat.Count(),
		"categories", len(cat.Categories()))

	bus := pubsub.NewBus()
	defer bus.Close()

	builder := checkout.NewBuilder(cfg.Checkout.Domain, cfg.Checkout.AssociateTag)
	cartSvc := service.New(store, bus, cat, builder, logger)

	badge := views.NewBadgeView(store, bus, logger)
	defer badge.Close()

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, cartSvc, cat, bus, badge, logger)

	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
		done <- true
	}()

	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}

// openCartStore builds the cart store named by the configured driver.
func openCartStore(cfg *config.Config, logger *slog.Logger) (storage.CartStore, error) {
	switch cfg.Storage.Driver {
	case "memory":
		logger.Info("using in-memory cart store; carts will not survive restarts")
		return storage.NewMemoryStore(), nil
	default:
		logger.Info("using sqlite cart store", "path", cfg.Storage.DatabasePath)
		return storage.NewStorage(cfg.Storage.DatabasePath, logger)
	}
}
