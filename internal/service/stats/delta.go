package stats

import (
	"fmt"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/constants"
)

func checkSeries(rows []domain.TimeSeriesRow) error {
	if len(rows) < 2 {
		return fmt.Errorf("%w: need 2 rows, got %d", constants.ErrInsufficientData, len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Date <= rows[i-1].Date {
			return fmt.Errorf("%w: %s after %s at row %d", constants.ErrUnsorted, rows[i].Date, rows[i-1].Date, i)
		}
	}
	return nil
}

// Deltas converts a cumulative column into day-over-day differences. rows
// must belong to one entity and be strictly ascending by date; they are not
// sorted here. The first delta is 0 and fractional differences are truncated.
func Deltas(rows []domain.TimeSeriesRow, column domain.Column) ([]int64, error) {
	if err := checkSeries(rows); err != nil {
		return nil, err
	}

	out := make([]int64, len(rows))
	for i := 1; i < len(rows); i++ {
		out[i] = int64(rows[i].Value(column) - rows[i-1].Value(column))
	}
	return out, nil
}

// DailySeries computes case, death and, when present, recovery deltas.
func DailySeries(rows []domain.TimeSeriesRow) ([]domain.DailyDelta, error) {
	cases, err := Deltas(rows, domain.ColumnCases)
	if err != nil {
		return nil, fmt.Errorf("cases: %w", err)
	}
	deaths, err := Deltas(rows, domain.ColumnDeaths)
	if err != nil {
		return nil, fmt.Errorf("deaths: %w", err)
	}

	var recovered []int64
	if rows[0].HasRecovered {
		recovered, err = Deltas(rows, domain.ColumnRecovered)
		if err != nil {
			return nil, fmt.Errorf("recovered: %w", err)
		}
	}

	series := make([]domain.DailyDelta, len(rows))
	for i, row := range rows {
		series[i] = domain.DailyDelta{
			Date:   row.Date,
			Cases:  cases[i],
			Deaths: deaths[i],
		}
		if recovered != nil {
			r := recovered[i]
			series[i].Recovered = &r
		}
	}
	return series, nil
}
