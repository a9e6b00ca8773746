package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"cart-offer/internal/config"
	"cart-offer/internal/handler"
	"cart-offer/internal/router"
	"cart-offer/internal/segment"
	"cart-offer/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, "segment-mock")
	logger.Info().Msg("starting mock user segment server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir, err := loadDirectory(ctx, cfg, logger)
	if err != nil {
		return err
	}

	resolver := segment.NewDirectoryResolver(dir)
	segmentHandler := handler.NewSegmentHandler(service.NewSegmentService(resolver, logger), logger)

	mux := router.NewSegmentMock(segmentHandler, router.Options{
		BasePath:    cfg.Server.BasePath,
		ServiceName: "segment-mock",
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + strconv.Itoa(cfg.Segment.MockPort),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().
			Str("address", server.Addr).
			Int("users", dir.Size()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
	}

	return nil
}

// loadDirectory loads the configured segment file, trying S3 first when
// enabled, or falls back to the built-in mapping when no file is set.
func loadDirectory(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (segment.Directory, error) {
	if cfg.Segment.DirectoryFile == "" {
		logger.Info().Msg("no segment file configured, serving built-in directory")
		return segment.DefaultDirectory(), nil
	}

	fileLoader := segment.NewFileLoader(logger)

	var s3Loader segment.Loader
	if cfg.S3.Enabled {
		l, err := segment.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	}

	loader := segment.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	dir, err := loader.Load(ctx, cfg.Segment.DirectoryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load segment directory: %w", err)
	}

	return dir, nil
}
