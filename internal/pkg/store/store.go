package store

import (
	"context"
	"time"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	Migrate(ctx context.Context) error
	GetDataset(ctx context.Context, url string, notBefore time.Time) (*domain.CachedDataset, error)
	PutDataset(ctx context.Context, dataset *domain.CachedDataset) error
	DeleteDatasets(ctx context.Context) (int64, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
