package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/service/stats"
)

// IndiaOverview returns the state map of the latest date, the national
// totals and their change since the previous date.
func (s *Service) IndiaOverview(ctx context.Context) (*domain.IndiaOverview, error) {
	table, err := s.table(ctx, domain.DatasetIndia)
	if err != nil {
		return nil, err
	}

	latest, previous, err := stats.LatestTwoDates(table.Dates())
	if err != nil {
		return nil, fmt.Errorf("stats.LatestTwoDates: %w", err)
	}

	snapshot := stats.TakeSnapshot(table, latest, stats.IndiaAggregates, stats.IndiaNames)
	overview := &domain.IndiaOverview{
		Date:         latest,
		PreviousDate: previous,
		GeoJSONURL:   s.geoJSONURL,
		Map:          snapshot.Rows,
		States:       statesByConfirmed(snapshot),
	}
	if overview.Map == nil {
		overview.Map = []domain.SnapshotRow{}
	}

	now, ok := stats.Pick(table, latest, stats.IndiaEntity)
	if !ok {
		return overview, nil
	}
	totals := stats.Totals(now)
	overview.National = &totals

	if before, ok := stats.Pick(table, previous, stats.IndiaEntity); ok {
		overview.Change = change(before, now)
	}

	return overview, nil
}

func change(before, now domain.TimeSeriesRow) *domain.DailyDelta {
	delta := &domain.DailyDelta{
		Date:   now.Date,
		Cases:  int64(now.Cases - before.Cases),
		Deaths: int64(now.Deaths - before.Deaths),
	}
	if now.HasRecovered {
		r := int64(now.Recovered - before.Recovered)
		delta.Recovered = &r
	}
	return delta
}

func statesByConfirmed(snapshot domain.Snapshot) []string {
	rows := make([]domain.SnapshotRow, len(snapshot.Rows))
	copy(rows, snapshot.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Cases != rows[j].Cases {
			return rows[i].Cases > rows[j].Cases
		}
		return rows[i].Deaths > rows[j].Deaths
	})

	states := make([]string, len(rows))
	for i, r := range rows {
		states[i] = r.Entity
	}
	return states
}

// StateDetail returns the daily changes and latest totals of a state. The
// name may be given in either the source or the boundary convention.
func (s *Service) StateDetail(ctx context.Context, name string) (*domain.EntityDetail, error) {
	table, err := s.table(ctx, domain.DatasetIndia)
	if err != nil {
		return nil, err
	}

	entity, ok := resolveState(name, stats.Entities(table, stats.IndiaAggregates))
	if !ok {
		return nil, fmt.Errorf("%w: state %q", constants.ErrNotFound, name)
	}

	return entityDetail(table, entity, stats.IndiaNames.Normalize(entity))
}

func resolveState(name string, states []string) (string, bool) {
	if state, ok := stats.Resolve(stats.IndiaNames.Denormalize(name), states); ok {
		return state, true
	}

	key := stats.Key(name)
	for _, state := range states {
		if stats.Key(stats.IndiaNames.Normalize(state)) == key {
			return state, true
		}
	}
	return "", false
}
