package bootstrap

import (
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/openshelf/library-admin/config"
	"github.com/openshelf/library-admin/internal/adapters/libraryapi"
	redisstore "github.com/openshelf/library-admin/internal/adapters/redis"
	"github.com/openshelf/library-admin/internal/service"
)

// ServiceContainer holds the application services the HTTP layer
// consumes.
type ServiceContainer struct {
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Directory *service.DirectoryService
	Lending   *service.LendingService
}

// BuildServices wires the upstream client, the session store, and the
// services on top of them.
func BuildServices(
	cfg *config.AppConfig,
	redisClient goredis.UniversalClient,
	logger *slog.Logger,
) (ServiceContainer, error) {
	api, err := libraryapi.New(libraryapi.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build upstream client: %w", err)
	}

	sessions := redisstore.NewSessionStore(redisClient)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Provider:        api,
		Recovery:        api,
		Sessions:        sessions,
		SessionTTL:      cfg.Session.TTL,
		RevalidateAfter: cfg.Session.RevalidateAfter,
		Logger:          logger,
	})

	return ServiceContainer{
		Auth:      auth,
		Catalog:   service.NewCatalogService(api, api),
		Directory: service.NewDirectoryService(api, api),
		Lending:   service.NewLendingService(api),
	}, nil
}
