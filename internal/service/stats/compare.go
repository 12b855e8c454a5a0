package stats

import (
	"fmt"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/constants"
)

// Compare returns the cumulative case series of each requested entity,
// limited to dates with at least one case.
func Compare(table *domain.Table, entities []string, exclude ExclusionSet) ([]domain.EntitySeries, error) {
	known := Entities(table, exclude)

	series := make([]domain.EntitySeries, 0, len(entities))
	for _, requested := range entities {
		entity, ok := Resolve(requested, known)
		if !ok {
			return nil, fmt.Errorf("%w: entity %q", constants.ErrNotFound, requested)
		}

		points := make([]domain.SeriesPoint, 0)
		for _, row := range SortedByDate(table.EntityRows(entity)) {
			if row.Cases <= 0 {
				continue
			}
			points = append(points, domain.SeriesPoint{Date: row.Date, Cases: int64(row.Cases)})
		}

		series = append(series, domain.EntitySeries{Entity: entity, Points: points})
	}
	return series, nil
}
