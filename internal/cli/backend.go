package cli

import (
	"context"
	"fmt"

	"github.com/idilsaglam/nottodo/internal/config"
	"github.com/idilsaglam/nottodo/internal/store"
	"github.com/idilsaglam/nottodo/internal/store/jsonstore"
	"github.com/idilsaglam/nottodo/internal/store/memstore"
	"github.com/idilsaglam/nottodo/internal/store/redisstore"
	"github.com/idilsaglam/nottodo/internal/store/sqlitestore"
)

func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memstore.New(), nil
	case config.StoreSQLite:
		p, err := cfg.DataPath(sqlitestore.DefaultFileName)
		if err != nil {
			return nil, err
		}
		s, err := sqlitestore.Open(ctx, p)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreRedis:
		s, err := redisstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreJSON:
		p, err := cfg.DataPath(jsonstore.DefaultFileName)
		if err != nil {
			return nil, err
		}
		return jsonstore.New(p), nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
