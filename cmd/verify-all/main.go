// Command verify-all sweeps every active provider through license
// verification once. Meant to run from cron; the spacing between providers
// keeps the request rate toward the state portals polite.
//
// The exit status reflects run completion only. A sweep that finishes with
// per-provider failures still exits 0; each failure is already recorded on
// the provider's attempt log.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"licensure/internal/batch"
	"licensure/internal/lookup"
	"licensure/internal/lookup/northcarolina"
	"licensure/internal/lookup/virginia"
	"licensure/internal/platform/config"
	"licensure/internal/platform/logger"
	"licensure/internal/verify/events"
	"licensure/internal/verify/service"
	"licensure/internal/verify/store/attempt"
	"licensure/internal/verify/store/credential"
	"licensure/internal/verify/store/provider"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("sweep aborted", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL == "" {
		return errors.New("verify-all needs database_url, the sweep runs against the provider store")
	}
	db, err := sql.Open("postgres", cfg.DatabaseURL)
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

	providers := provider.NewPostgres(db)
	attempts := attempt.NewPostgres(db)
	credentials := credential.NewPostgres(db)

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
		publisher = kafkaPub
	}

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
		return fmt.Errorf("build board registry: %w", err)
	}

	svc, err := service.New(providers, attempts, credentials, registry,
		service.WithLogger(log),
		service.WithPublisher(publisher),
		service.WithBackoff(service.NewBackoff(cfg.VerifyMaxAttempts, cfg.VerifyBackoffBase, cfg.VerifyBackoffMax)),
	)
	if err != nil {
		return fmt.Errorf("build verification service: %w", err)
	}

	runner, err := batch.New(providers, svc,
		batch.WithLogger(log),
		batch.WithDelay(cfg.BatchDelay),
	)
	if err != nil {
		return fmt.Errorf("build batch runner: %w", err)
	}

	var summary *batch.Summary
	g, gctx := errgroup.WithContext(ctx)
	feedCtx, stopFeed := context.WithCancel(gctx)
	if kafkaPub != nil {
		g.Go(func() error {
			if err := kafkaPub.Run(feedCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("event publisher: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		// Stop the feed worker once the sweep ends; the attempt log is the
		// durable record, the feed is best effort.
		defer stopFeed()
		s, err := runner.Run(gctx)
		summary = s
		return err
	})
	err = g.Wait()

	if summary != nil {
		if out, jerr := json.MarshalIndent(summary, "", "  "); jerr == nil {
			fmt.Println(string(out))
		}
	}
	return err
}
