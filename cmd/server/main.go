package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"smartmoney/internal/app/server/api"
	"smartmoney/internal/app/server/config"
	"smartmoney/internal/domain/ledger"
	"smartmoney/internal/domain/tenant"
	"smartmoney/internal/infrastructure/storage/postgres"
	"smartmoney/internal/infrastructure/storage/sqlite"
	"smartmoney/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env, logger.WithLevel(cfg.Logger.LogLevel))

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := sqlite.NewRegistry(cfg.DB.DataDir, log)
	defer func() {
		if err := registry.CloseAll(); err != nil {
			log.Error("failed to close tenant stores", "error", err)
		}
	}()

	var remote ledger.Remote
	if cfg.RemoteEnabled() {
		mirror, err := postgres.New(ctx, cfg.DB.DatabaseURI, cfg.DB.Migrations)
		if err != nil {
			return err
		}
		defer mirror.Close()
		remote = postgres.NewMirrorRepository(mirror.Pool(), log)
		log.Info("remote mirror connected")
	}

	mux := api.New(api.Services{
		Ledger:  ledger.NewService(registry, remote, log),
		Tenants: tenant.NewService(registry, log),
		Remote:  remote != nil,
	}, log)

	srv := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "address", cfg.Server.RunAddress, "data_dir", cfg.DB.DataDir)
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

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
