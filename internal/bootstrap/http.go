package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/openshelf/library-admin/config"
	httpx "github.com/openshelf/library-admin/internal/http"
)

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(
	cfg *config.AppConfig,
	services ServiceContainer,
	logger *slog.Logger,
) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	handler, err := httpx.NewRouter(httpx.RouterServices{
		Auth:         services.Auth,
		Catalog:      services.Catalog,
		Directory:    services.Directory,
		Lending:      services.Lending,
		CookieDomain: cfg.HTTP.CookieDomain,
		CookieSecure: cfg.HTTP.CookieSecure,
		SessionTTL:   cfg.Session.TTL,
		IsDev:        cfg.IsDev,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	addr := cfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server, nil
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}
