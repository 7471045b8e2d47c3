package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"vinkit/internal/decoder"
	"vinkit/internal/decoder/handler"
	decodermetrics "vinkit/internal/decoder/metrics"
	"vinkit/internal/platform/config"
	"vinkit/internal/platform/httpserver"
	"vinkit/internal/platform/logger"
	"vinkit/internal/platform/postgres"
	"vinkit/internal/platform/redis"
	httptransport "vinkit/internal/transport/http"
	"vinkit/internal/wmi"
	"vinkit/internal/wmi/cache"
	"vinkit/internal/wmi/catalog"
	"vinkit/internal/wmi/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	health := map[string]httptransport.HealthCheck{}

	cat, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load wmi catalog: %w", err)
	}

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		health["postgres"] = db.PingContext
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		health["redis"] = redisClient.Health
	}

	resolver, err := buildResolver(cfg, log, reg, cat, db, redisClient)
	if err != nil {
		return err
	}
	describer, err := wmi.NewDescriber(resolver, wmi.WithNamespace(cfg.WMI.Namespace))
	if err != nil {
		return fmt.Errorf("build wmi describer: %w", err)
	}

	svc := decoder.New(
		decoder.WithDescriber(describer),
		decoder.WithLogger(log),
		decoder.WithMetrics(decodermetrics.New(reg)),
		decoder.WithDefaultLocale(cat.Match(cfg.WMI.DefaultLocale)),
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:   log,
		Gatherer: reg,
		Health:   health,
		Modules:  []httptransport.Registrar{handler.New(svc, log, cat.Match)},
	})
	srv := httpserver.New(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting vinkit", "addr", cfg.Addr, "locales", cat.Locales())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "grace", cfg.ShutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// buildResolver layers caches over the name sources:
// memory -> redis (optional) -> postgres (optional) -> embedded catalog.
func buildResolver(
	cfg config.Server,
	log *slog.Logger,
	reg prometheus.Registerer,
	cat *catalog.Catalog,
	db *sql.DB,
	redisClient *redis.Client,
) (wmi.Resolver, error) {
	var resolver wmi.Resolver = cat
	if db != nil {
		// Postgres answers only for the exact locale; the catalog behind it
		// supplies its own translation before falling back to the base.
		pg, err := store.NewPostgres(db, catalog.BaseLocale, store.WithExactLocale())
		if err != nil {
			return nil, err
		}
		resolver = wmi.Chain(pg, cat)
	}

	cacheMetrics := cache.NewMetrics(reg)
	if redisClient != nil {
		rc, err := cache.NewRedis(redisClient.Client, resolver, cfg.WMI.CacheTTL,
			cache.WithRedisMetrics(cacheMetrics),
			cache.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("build redis cache: %w", err)
		}
		resolver = rc
	}

	mem, err := cache.NewMemory(resolver, cfg.WMI.CacheTTL, cache.WithMemoryMetrics(cacheMetrics))
	if err != nil {
		return nil, fmt.Errorf("build memory cache: %w", err)
	}
	return mem, nil
}
