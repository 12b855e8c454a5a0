package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/logger"
	"github.com/ougirez/covidboard/internal/pkg/store/xpgx"
)

const createDatasetCache = `
create table if not exists dataset_cache (
	url        text primary key,
	body       bytea       not null,
	fetched_at timestamptz not null default now()
)`

var datasetColumns = []string{"url", "body", "fetched_at"}

func (s *store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createDatasetCache); err != nil {
		return fmt.Errorf("create %s: %w", tableDatasetCache, err)
	}
	return nil
}

func getDatasetQuery(url string, notBefore time.Time) sq.SelectBuilder {
	return builder().Select(datasetColumns...).
		From(tableDatasetCache).
		Where(sq.And{
			sq.Eq{"url": url},
			sq.GtOrEq{"fetched_at": notBefore},
		})
}

func (s *store) GetDataset(ctx context.Context, url string, notBefore time.Time) (*domain.CachedDataset, error) {
	selected, err := xpgx.Getx[domain.CachedDataset](ctx, s.pool, getDatasetQuery(url, notBefore))
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func putDatasetQuery(dataset *domain.CachedDataset) sq.InsertBuilder {
	return builder().Insert(tableDatasetCache).
		Columns(datasetColumns...).
		Values(dataset.URL, dataset.Body, dataset.FetchedAt).
		Suffix(`
on conflict (url)
do update
set
	body = excluded.body,
	fetched_at = excluded.fetched_at`)
}

func (s *store) PutDataset(ctx context.Context, dataset *domain.CachedDataset) error {
	if _, err := s.pool.Execx(ctx, putDatasetQuery(dataset)); err != nil {
		logger.Errorf(ctx, "PutDataset, url-%s: %s", dataset.URL, err.Error())
		return err
	}

	return nil
}

func (s *store) DeleteDatasets(ctx context.Context) (int64, error) {
	tag, err := s.pool.Execx(ctx, builder().Delete(tableDatasetCache))
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
