package dashboard

import (
	"context"
	"fmt"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/domain/dto"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/service/stats"
)

// GlobalOverview returns the world map, the world totals and the country
// list of the latest date. India leads the country list when present.
func (s *Service) GlobalOverview(ctx context.Context) (*domain.GlobalOverview, error) {
	table, err := s.table(ctx, domain.DatasetGlobal)
	if err != nil {
		return nil, err
	}

	date, err := stats.LatestDate(table.Dates())
	if err != nil {
		return nil, fmt.Errorf("stats.LatestDate: %w", err)
	}

	snapshot := stats.TakeSnapshot(table, date, stats.GlobalAggregates, stats.GlobalNames)
	overview := &domain.GlobalOverview{
		Date:      date,
		Map:       snapshot.Rows,
		Countries: indiaFirst(stats.Entities(table, stats.GlobalAggregates)),
	}
	if overview.Map == nil {
		overview.Map = []domain.SnapshotRow{}
	}

	if world, ok := stats.Pick(table, date, stats.WorldEntity); ok {
		totals := stats.Totals(world)
		overview.World = &totals
	}

	return overview, nil
}

func indiaFirst(countries []string) []string {
	for i, c := range countries {
		if c != stats.IndiaEntity {
			continue
		}
		ordered := make([]string, 0, len(countries))
		ordered = append(ordered, c)
		ordered = append(ordered, countries[:i]...)
		return append(ordered, countries[i+1:]...)
	}
	return countries
}

// CountryDetail returns the daily changes and the latest totals of a country.
func (s *Service) CountryDetail(ctx context.Context, name string) (*domain.EntityDetail, error) {
	table, err := s.table(ctx, domain.DatasetGlobal)
	if err != nil {
		return nil, err
	}

	entity, ok := stats.Resolve(name, stats.Entities(table, stats.GlobalAggregates))
	if !ok {
		return nil, fmt.Errorf("%w: country %q", constants.ErrNotFound, name)
	}

	return entityDetail(table, entity, entity)
}

func entityDetail(table *domain.Table, entity, displayName string) (*domain.EntityDetail, error) {
	rows := stats.SortedByDate(table.EntityRows(entity))
	daily, err := stats.DailySeries(rows)
	if err != nil {
		return nil, fmt.Errorf("stats.DailySeries %s: %w", entity, err)
	}

	latest := rows[len(rows)-1]
	return &domain.EntityDetail{
		Entity: displayName,
		Date:   latest.Date,
		Latest: stats.Totals(latest),
		Daily:  daily,
	}, nil
}

// Fatalities ranks countries of the latest date by deaths or by fatality rate.
func (s *Service) Fatalities(ctx context.Context, by string, limit int) (*domain.FatalityRanking, error) {
	table, err := s.table(ctx, domain.DatasetFatalities)
	if err != nil {
		return nil, err
	}

	date, err := stats.LatestDate(table.Dates())
	if err != nil {
		return nil, fmt.Errorf("stats.LatestDate: %w", err)
	}

	byCount, byRate := stats.RankFatalities(stats.TakeSnapshot(table, date, stats.GlobalAggregates, stats.GlobalNames), limit)

	ranking := &domain.FatalityRanking{Date: date, By: dto.ByNumber, Entries: byCount}
	switch by {
	case "", dto.ByNumber:
	case dto.ByRate:
		ranking.By, ranking.Entries = dto.ByRate, byRate
	default:
		return nil, fmt.Errorf("%w: unknown ranking %q", constants.ErrBadRequest, by)
	}

	return ranking, nil
}

// Trend returns the last week or month of the global case curve in millions.
func (s *Service) Trend(ctx context.Context, window string) (*domain.TrendView, error) {
	days := stats.WeekDays
	switch window {
	case "", dto.WindowWeek:
		window = dto.WindowWeek
	case dto.WindowMonth:
		days = stats.MonthDays
	default:
		return nil, fmt.Errorf("%w: unknown window %q", constants.ErrBadRequest, window)
	}

	table, err := s.table(ctx, domain.DatasetGlobal)
	if err != nil {
		return nil, err
	}

	points, err := stats.Trend(table, stats.GlobalAggregates)
	if err != nil {
		return nil, fmt.Errorf("stats.Trend: %w", err)
	}

	return &domain.TrendView{Window: window, Points: stats.TrendWindow(points, days)}, nil
}

// Compare returns the cumulative case curves of the requested countries.
func (s *Service) Compare(ctx context.Context, countries []string) (*domain.ComparisonView, error) {
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: no countries to compare", constants.ErrBadRequest)
	}

	table, err := s.table(ctx, domain.DatasetGlobal)
	if err != nil {
		return nil, err
	}

	series, err := stats.Compare(table, countries, stats.GlobalAggregates)
	if err != nil {
		return nil, fmt.Errorf("stats.Compare: %w", err)
	}

	return &domain.ComparisonView{Series: series}, nil
}
