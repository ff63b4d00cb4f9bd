// Command library-admin serves the role-gated admin front-end for the
// OpenShelf library platform.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openshelf/library-admin/internal/bootstrap"
)

func main() {
	logger := bootstrap.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	redisClient, err := bootstrap.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.Error("close redis client", "error", cerr)
		}
	}()

	services, err := bootstrap.BuildServices(&cfg, redisClient, logger)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}

	server, err := bootstrap.StartHTTPServer(&cfg, services, logger)
	if err != nil {
		return fmt.Errorf("start http server: %w", err)
	}

	<-ctx.Done()
	return bootstrap.ShutdownHTTPServer(context.Background(), server, logger)
}
