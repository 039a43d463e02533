package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Noorain464/GoogleDrive/internal/api"
	"github.com/Noorain464/GoogleDrive/internal/blob"
	"github.com/Noorain464/GoogleDrive/internal/config"
	"github.com/Noorain464/GoogleDrive/internal/platform/crypto"
	"github.com/Noorain464/GoogleDrive/internal/service"
	"github.com/Noorain464/GoogleDrive/internal/store"
	memorystore "github.com/Noorain464/GoogleDrive/internal/store/memory"
	mongostore "github.com/Noorain464/GoogleDrive/internal/store/mongo"

	"github.com/rs/zerolog"
)

// main is the entry point for the application.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run server: %v\n", err)
		os.Exit(1)
	}
}

// run initializes and starts the HTTP server.
func run() error {
	configPath := flag.String("config", "", "path to an optional config file")
	flag.Parse()

	// =========================================================================
	// Configuration

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup structured logger.
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if cfg.Logging.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	logger.Info().Str("store", cfg.Store.Type).Msg("configuration loaded")

	// =========================================================================
	// Stores

	var (
		nodeStore  store.NodeStore
		shareStore store.ShareStore
		userStore  store.UserStore
	)

	switch cfg.Store.Type {
	case "memory":
		nodeStore = memorystore.NewNodeStore()
		shareStore = memorystore.NewShareStore()
		userStore = memorystore.NewUserStore()
		logger.Warn().Msg("using in-memory store, data will not survive a restart")

	default:
		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		dbClient, err := mongostore.NewClient(dbCtx, cfg.Mongo)
		if err != nil {
			return fmt.Errorf("could not connect to database: %w", err)
		}
		defer func() {
			if err := dbClient.Disconnect(context.Background()); err != nil {
				logger.Error().Err(err).Msg("error disconnecting from DB")
			}
		}()

		db := dbClient.Database(cfg.Mongo.Database)
		nodeStore = mongostore.NewNodeStore(db)
		shareStore = mongostore.NewShareStore(db)
		userStore = mongostore.NewUserStore(db)
		logger.Info().Msg("database connection established")
	}

	blobStore, err := blob.NewDiskStore(cfg.Storage.Directory)
	if err != nil {
		return fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	// =========================================================================
	// Initialize Dependencies (Dependency Injection)

	tokenSvc := crypto.NewJWTGenerator(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	passSvc := crypto.NewBcryptManager(0)

	treeSvc := service.NewTreeService(nodeStore)
	itemSvc := service.NewItemService(nodeStore, blobStore, treeSvc, logger)
	shareSvc := service.NewShareService(shareStore, nodeStore, userStore)
	viewSvc := service.NewViewService(nodeStore, treeSvc, shareSvc)
	userSvc := service.NewUserService(userStore, tokenSvc, passSvc)

	authMiddleware := api.NewAuthMiddleware(tokenSvc)
	userHandler := api.NewUserHandler(userSvc)
	itemHandler := api.NewItemHandler(itemSvc, viewSvc)
	shareHandler := api.NewShareHandler(shareSvc)

	logger.Info().Msg("dependencies initialized")

	// =========================================================================
	// HTTP Server Setup

	handler := api.NewRouter(logger, authMiddleware, userHandler, itemHandler, shareHandler)

	server := &http.Server{
		Addr:         cfg.HTTP.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// =========================================================================
	// Start Server & Graceful Shutdown

	shutdownErr := make(chan error)

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if cfg.HTTP.KeyPath != "" && cfg.HTTP.CertPath != "" {
			shutdownErr <- server.ListenAndServeTLS(cfg.HTTP.CertPath, cfg.HTTP.KeyPath)
		} else {
			shutdownErr <- server.ListenAndServe()
		}
	}()

	// Listen for OS signals for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-shutdownErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Msg("server shut down gracefully")
	return nil
}
