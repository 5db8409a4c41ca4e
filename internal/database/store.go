package database

import (
	"context"
	"fmt"

	"github.com/noah-isme/schoolboard-api/internal/config"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

// OpenStore builds the store selected by configuration and initialises its tables.
func OpenStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	var s store.Store
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		s = store.NewMemory()
	case config.StoreDriverSQLite:
		db, err := ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s = store.NewGorm(db)
	case config.StoreDriverPostgres:
		db, err := ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s = store.NewGorm(db)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	if err := s.Init(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}
