package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/clinic-admin-service/internal/cache"
	"github.com/maxviazov/clinic-admin-service/internal/config"
	"github.com/maxviazov/clinic-admin-service/internal/handler"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
	"github.com/maxviazov/clinic-admin-service/internal/repository/memory"
	"github.com/maxviazov/clinic-admin-service/internal/repository/postgres"
	"github.com/maxviazov/clinic-admin-service/internal/seed"
	"github.com/maxviazov/clinic-admin-service/internal/service"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, *configPath)
		},
	}
}

// storage is the repository set chosen by config plus what readiness must check.
type storage struct {
	repos repository.Set
	tx    repository.TxManager
	ping  handler.PingAll
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := repository.New(ctx, cfg.Postgres, &log)
		if err != nil {
			return storage{}, fmt.Errorf("postgres connection failed: %w", err)
		}
		return storage{
			repos: postgres.NewRepositories(pool.Raw()),
			tx:    postgres.NewTxManager(pool.Raw()),
			ping:  handler.PingAll{postgres.NewPinger(pool.Raw())},
			close: pool.Close,
		}, nil
	default:
		return storage{repos: memory.NewRepositories().Set(), close: func() {}}, nil
	}
}

func openCache(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (cache.Cache, func(), handler.Pinger, error) {
	if !cfg.Enabled {
		log.Info().Msg("page cache disabled")
		return cache.Noop{}, func() {}, nil, nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Info().Str("addr", cfg.Addr).Msg("page cache enabled")
	return rc, func() { _ = rc.Close() }, rc, nil
}

func runServer(ctx context.Context, configPath string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("✅ Config and logger initialized")

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	pageCache, closeCache, cachePing, err := openCache(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeCache()
	if cachePing != nil {
		store.ping = append(store.ping, cachePing)
	}

	if cfg.Storage.Seed && cfg.Storage.Driver == config.DriverMemory {
		if err := seed.New(store.repos, nil, seed.DefaultCounts, log).Run(ctx); err != nil {
			return err
		}
	}

	svcs := service.NewServices(store.repos, pageCache, service.Options{
		Limits:   service.Limits{DefaultSize: cfg.Query.DefaultSize, MaxSize: cfg.Query.MaxSize},
		CacheTTL: time.Duration(cfg.Redis.TTL) * time.Second,
	}, log)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           handler.NewRouter(log, store.ping, svcs, cfg.Query.DefaultSize),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
