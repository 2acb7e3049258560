package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting membergate",
		"addr", cfg.HTTP.Addr,
		"api_base_url", cfg.API.BaseURL,
		"store_backend", cfg.Store.Backend,
	)

	infra, err := bootstrap.ConnectInfra(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close(logger)

	services, err := bootstrap.NewServices(&cfg, infra, logger)
	if err != nil {
		return err
	}

	return bootstrap.RunWithShutdown(&cfg, services, logger)
}
