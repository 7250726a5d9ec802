package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/promptdeckapp/promptdeck/internal/config"
	"github.com/promptdeckapp/promptdeck/internal/logger"
	"github.com/promptdeckapp/promptdeck/internal/seed"
	"github.com/promptdeckapp/promptdeck/internal/watcher"
)

// ProvideSeeder provides the prompt seeder.
func ProvideSeeder(i do.Injector) (*seed.Seeder, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return seed.New(storeHandle.Store, log.Logger), nil
}

// RunInitialSeed imports the configured seed file once at startup.
// Failures are logged, not fatal: the server still serves whatever the
// database already holds.
func RunInitialSeed(i do.Injector) {
	cfg := do.MustInvoke[*config.Config](i)
	if cfg.Seed.Path == "" {
		return
	}

	seeder := do.MustInvoke[*seed.Seeder](i)
	log := do.MustInvoke[*logger.Logger](i)

	count, err := seeder.ImportFile(context.Background(), cfg.Seed.Path)
	if err != nil {
		log.Warn("Initial seed import failed", "path", cfg.Seed.Path, "error", err)
		return
	}

	log.Info("Initial seed import completed", "path", cfg.Seed.Path, "prompts", count)
}

// SeedWatcherHandle wraps the seed file watcher with shutdown capability.
// Watcher is nil when seed watching is not configured.
type SeedWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SeedWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Stop()
}

// ProvideSeedWatcher provides the seed file watcher.
func ProvideSeedWatcher(i do.Injector) (*SeedWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Seed.Path == "" || !cfg.Seed.Watch {
		return &SeedWatcherHandle{Watcher: nil}, nil
	}

	seeder := do.MustInvoke[*seed.Seeder](i)

	w, err := watcher.New(cfg.Seed.Path, log.Logger, watcher.Options{})
	if err != nil {
		return nil, err
	}

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := w.Start(ctx); err != nil {
			log.Error("Seed watcher error", "error", err)
		}
	}()

	// Re-import on change in background
	go func() {
		for {
			select {
			case event := <-w.Events():
				switch event.Type {
				case watcher.EventAdded, watcher.EventModified:
					count, err := seeder.ImportFile(ctx, event.Path)
					if err != nil {
						log.Warn("Seed re-import failed", "path", event.Path, "error", err)
						continue
					}
					log.Info("Seed file re-imported", "path", event.Path, "prompts", count)
				case watcher.EventRemoved:
					// Previously imported prompts stay in the database.
					log.Info("Seed file removed", "path", event.Path)
				}
			case err := <-w.Errors():
				log.Warn("Seed watcher error", "error", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Seed watcher started", "path", cfg.Seed.Path)

	return &SeedWatcherHandle{
		Watcher: w,
		cancel:  cancel,
	}, nil
}
