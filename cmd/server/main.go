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

	"partyhub/internal/party/credential"
	partymetrics "partyhub/internal/party/metrics"
	"partyhub/internal/party/models"
	"partyhub/internal/party/service"
	"partyhub/internal/party/store"
	"partyhub/internal/party/validation"
	"partyhub/internal/platform/config"
	"partyhub/internal/platform/httpserver"
	"partyhub/internal/platform/logger"
	"partyhub/internal/platform/metrics"
	"partyhub/internal/platform/postgres"
	platformredis "partyhub/internal/platform/redis"
	audit "partyhub/pkg/platform/audit"
	"partyhub/pkg/platform/audit/publisher"
	"partyhub/pkg/platform/audit/store/kafka"
	"partyhub/pkg/platform/audit/store/logstore"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Server.Environment)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	individuals, organizations, closeStores, readiness, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	auditPublisher, closeAudit, err := openAudit(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	svc := service.New(
		individuals,
		organizations,
		validation.New(validation.WithPhoneRegion(cfg.Party.DefaultPhoneRegion)),
		credential.NewHasher(cfg.Party.BcryptCost),
		service.WithLogger(log),
		service.WithMetrics(partymetrics.New(reg)),
		service.WithAuditPublisher(auditPublisher),
	)

	router := newRouter(routerDeps{
		logger:         log,
		service:        svc,
		httpMetrics:    metrics.New(reg),
		gatherer:       reg,
		allowedOrigins: cfg.Server.CORSAllowedOrigins,
		requestTimeout: cfg.Server.RequestTimeout,
		debug:          !cfg.IsProduction(),
		readiness:      readiness,
	})
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.RequestTimeout)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting partyhub", "addr", cfg.Server.Addr, "environment", cfg.Server.Environment)
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
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// openStores selects Postgres when DATABASE_URL is set and in-memory stores
// otherwise, then layers the Redis read-through cache when REDIS_URL is set.
func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (
	service.IndividualStore, service.OrganizationStore, func(), []readinessCheck, error,
) {
	var (
		individuals   store.Store[*models.Individual]
		organizations store.Store[*models.Organization]
		checks        []readinessCheck
		closers       []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := postgres.Migrate(ctx, db, store.Schema); err != nil {
			closeAll()
			return nil, nil, nil, nil, err
		}
		individuals = store.NewPostgres(db, models.KindIndividual, store.NewIndividual)
		organizations = store.NewPostgres(db, models.KindOrganization, store.NewOrganization)
		checks = append(checks, readinessCheck{name: "database", check: pingDB(db)})
	} else {
		log.Warn("DATABASE_URL not set; using in-memory party stores")
		individuals = store.NewInMemory(models.KindIndividual, store.NewIndividual)
		organizations = store.NewInMemory(models.KindOrganization, store.NewOrganization)
	}

	rc, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		closeAll()
		return nil, nil, nil, nil, err
	}
	if rc != nil {
		closers = append(closers, func() { _ = rc.Close() })
		opts := []store.CacheOption{store.WithCacheTTL(cfg.Redis.CacheTTL), store.WithCacheLogger(log)}
		individuals = store.NewCached(individuals, rc.Client, models.KindIndividual, store.NewIndividual, opts...)
		organizations = store.NewCached(organizations, rc.Client, models.KindOrganization, store.NewOrganization, opts...)
		checks = append(checks, readinessCheck{name: "cache", check: rc.Health})
	}

	return individuals, organizations, closeAll, checks, nil
}

func pingDB(db *sql.DB) func(context.Context) error {
	return db.PingContext
}

// openAudit returns an async publisher backed by Kafka when brokers are
// configured and by the structured log otherwise.
func openAudit(ctx context.Context, cfg config.Config, log *slog.Logger) (*publisher.Publisher, func(), error) {
	var sink audit.Store = logstore.New(log)
	closeSink := func() {}

	if len(cfg.Kafka.Brokers) > 0 {
		ks, err := kafka.New(cfg.Kafka.Brokers, kafka.WithTopic(cfg.Kafka.AuditTopic))
		if err != nil {
			return nil, nil, err
		}
		if err := ks.EnsureTopic(ctx, 3, 1); err != nil {
			ks.Close()
			return nil, nil, err
		}
		sink = ks
		closeSink = ks.Close
	}

	pub := publisher.NewPublisher(sink, publisher.WithAsyncBuffer(1024), publisher.WithLogger(log))
	return pub, func() {
		_ = pub.Close()
		closeSink()
	}, nil
}
