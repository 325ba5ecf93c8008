package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/voltmarket/market-client/internal/api"
	"github.com/voltmarket/market-client/internal/infrastructure/memstore"
	"github.com/voltmarket/market-client/internal/pkg/config"
	"github.com/voltmarket/market-client/pkg/logger"
)

const tokenTTL = 7 * 24 * time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "mockapi",
	})

	store, err := memstore.New(memstore.Options{
		AdminEmail:    cfg.Server.AdminEmail,
		AdminPassword: cfg.Server.AdminPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed store")
	}

	router := api.NewRouter(store, api.Options{
		JWTSecret:  cfg.Server.JWTSecret,
		TokenTTL:   tokenTTL,
		Log:        log,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("mock backend listening")
		errCh <- srv.ListenAndServe()
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		log.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}
}
