package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/AseemBaranwal/Sentimentor/internal/adapter/httpserver"
	"github.com/AseemBaranwal/Sentimentor/internal/adapter/memory"
	"github.com/AseemBaranwal/Sentimentor/internal/adapter/postgres"
	"github.com/AseemBaranwal/Sentimentor/internal/adapter/redis"
	"github.com/AseemBaranwal/Sentimentor/internal/app"
	"github.com/AseemBaranwal/Sentimentor/internal/domain"
	"github.com/AseemBaranwal/Sentimentor/internal/platform/config"
	"github.com/AseemBaranwal/Sentimentor/internal/platform/logging"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupStore constructs the room store named by STORE_BACKEND, along with a
// teardown function and the health checks for the chosen backend.
func setupStore(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (domain.RoomStore, func(), []httpserver.HealthCheck) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		store := redis.NewRoomStore(client, clock)
		checks := []httpserver.HealthCheck{{Name: "redis", Check: store.Ping}}
		return store, func() { _ = client.Close() }, checks

	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		store := postgres.NewRoomStore(pool)
		checks := []httpserver.HealthCheck{{Name: "postgres", Check: store.Ping}}
		return store, pool.Close, checks

	default:
		store := memory.NewStore(clock)
		return store, func() {}, nil
	}
}

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "store", cfg.StoreBackend)

	setupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, teardown, healthChecks := setupStore(setupCtx, cfg, clock)
	cancel()
	defer teardown()

	codes := app.NewCodeGenerator(cfg.RoomCodeMin, cfg.RoomCodeMax)
	appSvc := app.NewService(store, codes, cfg.CreateRoomMaxAttempts)

	srv := httpserver.NewServer(cfg, appSvc, healthChecks)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
