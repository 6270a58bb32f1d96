package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/entryform/internal/app/services"
	"github.com/vcrobe/entryform/internal/config"
	"github.com/vcrobe/entryform/internal/observability"
	"github.com/vcrobe/entryform/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (defaults apply when empty)")
	addr := flag.String("addr", "", "listen address, overrides the config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			observability.InitLogger("entryform-server", "info")
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := observability.InitLogger("entryform-server", cfg.LogLevel)
	if *configPath != "" {
		logger.Info().Str("path", *configPath).Msg("loaded config")
	}

	mock, err := services.NewMock(cfg.Mock)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid mock configuration")
	}

	srv := server.New(server.Options{
		Addr:        cfg.Addr,
		StaticDir:   cfg.StaticDir,
		CorsOrigins: cfg.CorsOrigins,
		Locations:   mock,
		Names:       mock,
		Logger:      logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Serve)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
