// Package di provides dependency injection configuration for the PromptDeck server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/promptdeckapp/promptdeck/internal/config"
	"github.com/promptdeckapp/promptdeck/internal/di/providers"
	"github.com/promptdeckapp/promptdeck/internal/logger"
	"github.com/promptdeckapp/promptdeck/internal/seed"
	"github.com/promptdeckapp/promptdeck/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Seeding
	do.Provide(injector, providers.ProvideSeeder)
	do.Provide(injector, providers.ProvideSeedWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*seed.Seeder](injector)

	// Import the configured seed file before the server takes traffic
	providers.RunInitialSeed(injector)

	// Workers
	_ = do.MustInvoke[*providers.SeedWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	// Trigger search reindex if needed
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
