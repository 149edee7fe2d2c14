package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/yongtae/pointsvc/internal/api"
	"github.com/yongtae/pointsvc/internal/infra/logging"
	"github.com/yongtae/pointsvc/internal/infra/pgutils"
	"github.com/yongtae/pointsvc/internal/metrics"
	"github.com/yongtae/pointsvc/internal/repos/balances"
	membalances "github.com/yongtae/pointsvc/internal/repos/balances/memory"
	pgbalances "github.com/yongtae/pointsvc/internal/repos/balances/postgres"
	"github.com/yongtae/pointsvc/internal/repos/histories"
	memhistories "github.com/yongtae/pointsvc/internal/repos/histories/memory"
	pghistories "github.com/yongtae/pointsvc/internal/repos/histories/postgres"
	"github.com/yongtae/pointsvc/internal/services/points"
	"github.com/yongtae/pointsvc/pkg/envconf"
	"github.com/yongtae/pointsvc/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	if cfg.AppEnv == "prod" {
		logging.SetupJSON(cfg.LogLevel)
	} else {
		logging.SetupText(cfg.LogLevel)
	}

	metrics.Register()

	sq := shutdownqueue.New()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := sq.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Stores ---
	balanceStore, historyStore, err := buildStores(ctx, cfg, sq)
	if err != nil {
		return fmt.Errorf("build stores: %w", err)
	}

	svc := points.New(balanceStore, historyStore)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, svc)

	sq.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "store", cfg.StoreBackend)

	select {
	case <-ctx.Done():
		// graceful path; the deferred queue drain runs
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}

func buildStores(ctx context.Context, cfg *apiConfig, sq *shutdownqueue.Queue) (balances.Store, histories.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		b := membalances.New(
			membalances.WithReadLatency(cfg.StoreGetLatency),
			membalances.WithWriteLatency(cfg.StorePutLatency),
		)

		return b, memhistories.New(), nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, nil, errors.New("PG_DSN is required for the postgres backend")
		}

		db, err := pgutils.OpenDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}

		sq.Add(func(context.Context) error {
			slog.Info("Close database")

			return db.Close()
		})

		return pgbalances.New(db), pghistories.New(db), nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
