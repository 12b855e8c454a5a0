package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/store"
)

// StoreCache keeps datasets in the postgres dataset_cache table.
type StoreCache struct {
	store   store.Store
	ttl     time.Duration
	now     func() time.Time
	closeFn func()
}

func NewStoreCache(s store.Store, ttl time.Duration, closeFn func()) *StoreCache {
	return &StoreCache{store: s, ttl: ttl, now: time.Now, closeFn: closeFn}
}

func (c *StoreCache) Get(ctx context.Context, url string) ([]byte, time.Time, error) {
	ds, err := c.store.GetDataset(ctx, url, c.now().Add(-c.ttl))
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, time.Time{}, constants.ErrCacheMiss
		}
		return nil, time.Time{}, fmt.Errorf("store.GetDataset: %w", err)
	}
	return ds.Body, ds.FetchedAt, nil
}

func (c *StoreCache) Set(ctx context.Context, url string, body []byte, fetchedAt time.Time) error {
	if c.ttl <= 0 {
		return nil
	}
	err := c.store.PutDataset(ctx, &domain.CachedDataset{URL: url, Body: body, FetchedAt: fetchedAt})
	if err != nil {
		return fmt.Errorf("store.PutDataset: %w", err)
	}
	return nil
}

func (c *StoreCache) Purge(ctx context.Context) (int64, error) {
	n, err := c.store.DeleteDatasets(ctx)
	if err != nil {
		return 0, fmt.Errorf("store.DeleteDatasets: %w", err)
	}
	return n, nil
}

func (c *StoreCache) Close() error {
	if c.closeFn != nil {
		c.closeFn()
	}
	return nil
}
