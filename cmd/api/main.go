package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dropshop/internal/attachment"
	"dropshop/internal/config"
	"dropshop/internal/database"
	"dropshop/internal/handler"
	"dropshop/internal/mapping"
	"dropshop/internal/repository"
	"dropshop/internal/router"
	"dropshop/internal/service"

	"github.com/rs/zerolog"
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
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting dropshop API server")

	tracerProvider := config.NewTracerProvider(cfg.Tracing)
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to shutdown tracer provider")
		}
	}()

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.ApplySchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Mapping rules are checked once, before any request is served
	mapper, err := mapping.NewMapper(cfg.Attachment.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid mapping configuration: %w", err)
	}

	store := newAttachmentStore(ctx, cfg, logger)
	newUnitOfWork := repository.NewUnitOfWorkFactory(pool, logger)

	// Initialize services
	orderService := service.NewOrderService(newUnitOfWork, mapper, logger)
	productService := service.NewProductService(newUnitOfWork, mapper, store, logger)
	categoryService := service.NewCategoryService(newUnitOfWork, mapper, logger)
	brandService := service.NewBrandService(newUnitOfWork, mapper, logger)
	dropshipperService := service.NewDropshipperService(newUnitOfWork, mapper, logger)

	// Initialize HTTP handlers
	pager := handler.Pager{
		DefaultSize: cfg.Pagination.DefaultPageSize,
		MaxSize:     cfg.Pagination.MaxPageSize,
	}

	mux := router.New(router.Handlers{
		Orders:       handler.NewOrderHandler(orderService, pager, logger),
		Products:     handler.NewProductHandler(productService, pager, cfg.Attachment.MaxUploadBytes, logger),
		Categories:   handler.NewCategoryHandler(categoryService, pager, logger),
		Brands:       handler.NewBrandHandler(brandService, pager, logger),
		Dropshippers: handler.NewDropshipperHandler(dropshipperService, pager, logger),
		Health:       handler.NewHealthHandler(pool, logger),
		Files:        http.FileServer(http.Dir(cfg.Attachment.Dir)),
	}, router.Options{
		APIKey:      cfg.Auth.APIKey,
		ServiceName: cfg.Tracing.ServiceName,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
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

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newAttachmentStore returns the local file store, fronted by S3 when enabled.
func newAttachmentStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) attachment.Store {
	fileStore := attachment.NewFileStore(cfg.Attachment.Dir, logger)

	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for attachments (S3 disabled)")
		return fileStore
	}

	s3Store, err := attachment.NewS3Store(ctx, attachment.S3Options{
		Bucket:        cfg.S3.Bucket,
		Region:        cfg.S3.Region,
		Prefix:        cfg.S3.Prefix,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	}, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 store, falling back to local file system only")
		return fileStore
	}

	return attachment.NewFallbackStore(s3Store, fileStore, true, logger)
}
