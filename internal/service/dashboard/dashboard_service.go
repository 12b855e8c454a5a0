package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/logger"
	"github.com/ougirez/covidboard/internal/service/loader"
)

type Loader interface {
	Load(ctx context.Context, src loader.Source) (*domain.Table, error)
	LoadAll(ctx context.Context, sources []loader.Source) (map[domain.Dataset]*domain.Table, error)
}

type Service struct {
	loader     Loader
	sources    map[domain.Dataset]loader.Source
	geoJSONURL string
}

func NewDashboardService(l Loader, sources map[domain.Dataset]loader.Source, geoJSONURL string) *Service {
	return &Service{
		loader:     l,
		sources:    sources,
		geoJSONURL: geoJSONURL,
	}
}

func (s *Service) table(ctx context.Context, dataset domain.Dataset) (*domain.Table, error) {
	src, ok := s.sources[dataset]
	if !ok || src.URL == "" {
		return nil, fmt.Errorf("%w: source %s is not configured", constants.ErrUpstream, dataset)
	}

	table, err := s.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("loader.Load: %w", err)
	}

	return table, nil
}

// Warmup loads every configured source so that later views hit the cache.
func (s *Service) Warmup(ctx context.Context) error {
	sources := make([]loader.Source, 0, len(s.sources))
	for _, src := range s.sources {
		if src.URL == "" {
			continue
		}
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Dataset < sources[j].Dataset })

	tables, err := s.loader.LoadAll(ctx, sources)
	if err != nil {
		return fmt.Errorf("loader.LoadAll: %w", err)
	}

	for dataset, table := range tables {
		logger.Infof(ctx, "warmed up %s: %d rows", dataset, len(table.Rows))
	}

	return nil
}
