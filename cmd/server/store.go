package main

import (
	"context"
	"fmt"

	"github.com/yourEmotion/blog/internal/config"
	"github.com/yourEmotion/blog/internal/service"
	"go.uber.org/zap"
)

// openStore builds the PostStore for the configured driver and makes sure its
// table exists. A SQL store that cannot be reached is an error; there is no
// fallback to the memory driver.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (service.PostStore, error) {
	var store service.PostStore
	switch cfg.Driver {
	case config.DriverMemory:
		if cfg.Seed {
			store = service.NewMemoryService(service.FixturePosts()...)
		} else {
			store = service.NewMemoryService()
		}
		zap.L().Info("Using in-memory post store", zap.Bool("seeded", cfg.Seed))
	default:
		db, err := config.InitDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
		}
		zap.L().Info("Connected to database", zap.String("driver", cfg.Driver))
		store = service.NewBlogService(db)
	}

	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed init store: %w", err)
	}
	return store, nil
}
