package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/isdelr/task-manager-be/internal/api"
	"github.com/isdelr/task-manager-be/internal/auth"
	"github.com/isdelr/task-manager-be/internal/config"
	"github.com/isdelr/task-manager-be/internal/database"
	"github.com/isdelr/task-manager-be/internal/logger"
	"github.com/isdelr/task-manager-be/internal/mongodb"
	"github.com/isdelr/task-manager-be/internal/services"
	"github.com/isdelr/task-manager-be/internal/store"
)

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	port := pflag.Int("port", 0, "listen port (overrides PORT)")
	pflag.Parse()

	// Load configuration
	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load env file: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.ServerPort = *port
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Set up persistence; the process does not serve without it.
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	backend, err := openBackend(connectCtx, cfg)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("Failed to initialize database")
	}
	defer backend.Close()
	log.Info().Str("driver", cfg.DatabaseDriver).Msg("Database connected")

	// Set up services
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	userService := services.NewUserService(backend, cfg.BcryptCost)
	taskService := services.NewTaskService(backend)

	// Set up router
	router := api.NewRouter(tokens, userService, taskService, cfg.AllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// openBackend connects to the configured store and prepares its schema.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.DatabaseDriver {
	case config.DriverMongo:
		mongoStore, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			mongoStore.Close()
			return nil, err
		}
		return mongoStore, nil
	default:
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply database migrations: %w", err)
		}
		return database.NewStore(db), nil
	}
}
