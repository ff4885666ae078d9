// Command server runs the license verification HTTP API.
//
// All wiring happens here: stores (Postgres or in-memory), the lookup cache
// (Redis or in-process), the attempt event feed (Kafka, optional), the state
// board registry, and the verification service behind the chi router.
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
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"licensure/internal/lookup"
	"licensure/internal/lookup/cache"
	"licensure/internal/lookup/northcarolina"
	"licensure/internal/lookup/virginia"
	"licensure/internal/platform/config"
	"licensure/internal/platform/httpserver"
	"licensure/internal/platform/logger"
	platformmetrics "licensure/internal/platform/metrics"
	"licensure/internal/platform/redis"
	"licensure/internal/verify/events"
	"licensure/internal/verify/handler"
	verifymetrics "licensure/internal/verify/metrics"
	"licensure/internal/verify/models"
	"licensure/internal/verify/service"
	"licensure/internal/verify/store"
	"licensure/internal/verify/store/attempt"
	"licensure/internal/verify/store/credential"
	"licensure/internal/verify/store/provider"
	"licensure/pkg/platform/httputil"
)

// providerStore is what the server needs from provider persistence: the
// service's view plus Create for the dev fixtures.
type providerStore interface {
	service.ProviderStore
	Create(ctx context.Context, p *models.Provider) error
}

type credentialStore interface {
	service.CredentialStore
	UpsertInsurance(ctx context.Context, rec *models.InsuranceRecord) error
	UpsertBond(ctx context.Context, rec *models.BondRecord) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		db          *sql.DB
		providers   providerStore
		attempts    service.AttemptLog
		credentials credentialStore
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}

		providers = provider.NewPostgres(db)
		attempts = attempt.NewPostgres(db)
		credentials = credential.NewPostgres(db)
		log.Info("stores ready", "backend", "postgres")
	} else {
		providers = provider.NewMemory()
		attempts = attempt.NewMemory()
		credentials = credential.NewMemory()
		log.Warn("no database_url configured, running on in-memory stores")
	}

	if cfg.SeedDevData {
		if db != nil {
			log.Warn("seed_dev_data ignored, fixtures are for in-memory runs")
		} else {
			n, err := seedDevData(ctx, providers, credentials, log)
			if err != nil {
				return fmt.Errorf("seed dev data: %w", err)
			}
			log.Info("development fixtures loaded", "providers", n)
		}
	}

	redisClient, err := redis.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	var lookupCache cache.Cache
	if redisClient != nil {
		defer redisClient.Close()
		lookupCache = cache.NewRedis(redisClient.Client)
		log.Info("lookup cache ready", "backend", "redis")
	} else {
		lookupCache = cache.NewMemory()
	}

	var publisher service.EventPublisher = events.Nop{}
	var kafkaPub *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub, err = events.NewKafka(cfg.KafkaBrokers,
			events.WithTopic(cfg.KafkaTopic),
			events.WithLogger(log),
		)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer kafkaPub.Close()

		topicCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = kafkaPub.EnsureTopic(topicCtx, 3, 1)
		cancel()
		if err != nil {
			// The feed is best effort; a broker that is down at boot must
			// not take the API down with it.
			log.Warn("kafka topic setup failed", "topic", cfg.KafkaTopic, "error", err)
		}
		publisher = kafkaPub
		log.Info("attempt event feed ready", "topic", cfg.KafkaTopic)
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	svc, err := service.New(providers, attempts, credentials, registry,
		service.WithLogger(log),
		service.WithMetrics(verifymetrics.New()),
		service.WithPublisher(publisher),
		service.WithBackoff(service.NewBackoff(cfg.VerifyMaxAttempts, cfg.VerifyBackoffBase, cfg.VerifyBackoffMax)),
		service.WithLookupCache(lookupCache, cfg.LookupCacheTTL),
	)
	if err != nil {
		return fmt.Errorf("build verification service: %w", err)
	}

	r := chi.NewRouter()
	handler.New(svc, log, platformmetrics.New()).Register(r)
	r.Get("/healthz", healthz(db, redisClient))
	r.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if kafkaPub != nil {
		g.Go(func() error {
			if err := kafkaPub.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("event publisher: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildRegistry assembles the board adapters on one shared portal client.
func buildRegistry(cfg *config.Config) (*lookup.Registry, error) {
	portal := lookup.NewClient(lookup.ClientConfig{
		Timeout:          cfg.LookupTimeout,
		UserAgent:        cfg.LookupUserAgent,
		SnapshotMaxBytes: cfg.SnapshotMaxBytes,
	})

	var vaOpts []virginia.Option
	if cfg.VirginiaBaseURL != "" {
		vaOpts = append(vaOpts, virginia.WithBaseURL(cfg.VirginiaBaseURL))
	}
	var ncOpts []northcarolina.Option
	if cfg.NorthCarolinaBaseURL != "" {
		ncOpts = append(ncOpts, northcarolina.WithBaseURL(cfg.NorthCarolinaBaseURL))
	}

	registry, err := lookup.NewRegistry(
		virginia.New(portal, vaOpts...),
		northcarolina.New(portal, ncOpts...),
	)
	if err != nil {
		return nil, fmt.Errorf("build board registry: %w", err)
	}
	return registry, nil
}

// healthz reports liveness plus the state of the optional backends. Probes
// only what is actually configured.
func healthz(db *sql.DB, redisClient *redis.Client) http.HandlerFunc {
	type health struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := make(map[string]string)
		healthy := true
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				checks["postgres"] = err.Error()
				healthy = false
			} else {
				checks["postgres"] = "ok"
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		body := health{Status: "ok", Checks: checks}
		status := http.StatusOK
		if !healthy {
			body.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, body)
	}
}
