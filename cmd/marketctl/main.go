package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/voltmarket/market-client/internal/cli"
	"github.com/voltmarket/market-client/internal/core/service"
	"github.com/voltmarket/market-client/internal/infrastructure/gateway"
	"github.com/voltmarket/market-client/internal/infrastructure/session"
	"github.com/voltmarket/market-client/internal/pkg/config"
	"github.com/voltmarket/market-client/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketctl",
	})

	sessions, closeSessions, err := session.Open(ctx, session.OpenOptions{
		Backend:   cfg.Session.Backend,
		Path:      cfg.Session.Path,
		Namespace: cfg.Session.Namespace,
		Redis:     session.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB},
		Mongo:     session.MongoConfig{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database},
	}, log)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Session.Backend).Msg("failed to open session store")
		return cli.ExitError
	}
	defer func() {
		if err := closeSessions(); err != nil {
			log.Warn().Err(err).Msg("session store close failed")
		}
	}()

	client := gateway.New(gateway.Config{
		BaseURL:  cfg.API.URL,
		Platform: gateway.Platform(cfg.API.Platform),
		Timeout:  cfg.API.Timeout,
	}, sessions, log)

	app := cli.New(cli.Deps{
		Client: client,
		Auth:   service.NewAuthService(client.SessionAPI(), sessions, log),
		Boot:   service.NewBootstrap(sessions, cfg.Bootstrap.Timeout, log),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    log,
	})
	return app.Run(ctx, os.Args[1:])
}
