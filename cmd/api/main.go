package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"cart-offer/internal/cache"
	"cart-offer/internal/config"
	"cart-offer/internal/database"
	"cart-offer/internal/handler"
	"cart-offer/internal/repository"
	"cart-offer/internal/router"
	"cart-offer/internal/segment"
	"cart-offer/internal/service"
	"cart-offer/internal/tracing"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger, "cart-offer-api")
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting cart offer API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Tracing.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("failed to flush traces")
		}
	}()

	// Initialize offer store
	offerRepo, closeStore, err := newOfferRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize segment resolver with a read-through cache
	segmentCache := newSegmentCache(ctx, cfg, logger)
	defer segmentCache.Close()

	resolver := segment.NewCachedResolver(
		segment.NewHTTPResolver(cfg.Segment.ServiceURL, cfg.Segment.Timeout(), logger),
		segmentCache,
		cfg.Segment.CacheTTL(),
		logger,
	)

	// Initialize services
	offerService := service.NewOfferService(offerRepo, logger)
	cartService := service.NewCartService(offerRepo, resolver, logger)

	// Initialize HTTP handlers
	offerHandler := handler.NewOfferHandler(offerService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)

	// Initialize router
	mux := router.New(offerHandler, cartHandler, router.Options{
		BasePath:    cfg.Server.BasePath,
		ServiceName: cfg.Tracing.ServiceName,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return serve(server, logger)
}

// newOfferRepository builds the configured offer store and its cleanup func.
func newOfferRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.OfferRepository, func(), error) {
	if cfg.Store.Driver != config.StorePostgres {
		logger.Info().Msg("using in-memory offer store")
		return repository.NewMemoryOfferRepository(logger), func() {}, nil
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return repository.NewOfferRepository(pool, logger), pool.Close, nil
}

// newSegmentCache returns a Redis cache when enabled and reachable, otherwise
// an in-process cache.
func newSegmentCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) cache.Cache {
	if !cfg.Redis.Enabled {
		logger.Info().Msg("using in-memory segment cache (redis disabled)")
		return cache.NewInMemoryCache()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	redisCache, err := cache.NewRedisCache(pingCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("addr", cfg.Redis.Addr).
			Msg("failed to connect to redis, falling back to in-memory segment cache")
		return cache.NewInMemoryCache()
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis segment cache")
	return redisCache
}

// serve runs the server until it fails or a shutdown signal arrives.
func serve(server *http.Server, logger zerolog.Logger) error {
	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", server.Addr).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
