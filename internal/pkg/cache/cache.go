package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/logger"
	"github.com/ougirez/covidboard/internal/pkg/store"
	"github.com/ougirez/covidboard/internal/pkg/store/xpgx"
	"github.com/spf13/viper"
)

// Cache keeps raw fetched bodies keyed by source URL. Get returns
// constants.ErrCacheMiss for absent or expired entries.
type Cache interface {
	Get(ctx context.Context, url string) (body []byte, fetchedAt time.Time, err error)
	Set(ctx context.Context, url string, body []byte, fetchedAt time.Time) error
	Purge(ctx context.Context) (int64, error)
	Close() error
}

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendNone     = "none"
)

// FromConfig builds the cache selected by cache.backend.
func FromConfig(ctx context.Context) (Cache, error) {
	ttl := viper.GetDuration(constants.ViperCacheTTLKey)
	backend := strings.ToLower(viper.GetString(constants.ViperCacheBackendKey))

	logger.Infof(ctx, "dataset cache: backend=%s ttl=%s", backend, ttl)

	switch backend {
	case BackendMemory, "":
		return NewMemory(ttl), nil
	case BackendRedis:
		return NewRedis(ctx, viper.GetString(constants.ViperRedisAddrKey), ttl)
	case BackendPostgres:
		pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperPostgresDSNKey))
		if err != nil {
			return nil, fmt.Errorf("xpgx.NewPool: %w", err)
		}
		s := store.NewStore(pool)
		if err = s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("store.Migrate: %w", err)
		}
		return NewStoreCache(s, ttl, pool.Close), nil
	case BackendNone:
		return Noop{}, nil
	}

	return nil, fmt.Errorf("unknown cache backend %q", backend)
}

type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, time.Time, error) {
	return nil, time.Time{}, constants.ErrCacheMiss
}

func (Noop) Set(context.Context, string, []byte, time.Time) error { return nil }
func (Noop) Purge(context.Context) (int64, error)                 { return 0, nil }
func (Noop) Close() error                                         { return nil }
