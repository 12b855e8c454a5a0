package stats

import (
	"fmt"
	"sort"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

const (
	WeekDays  = 7
	MonthDays = 30
)

var million = decimal.NewFromInt(1_000_000)

// Trend sums cumulative cases of all non-excluded entities per date, in
// millions, ordered by date.
func Trend(table *domain.Table, exclude ExclusionSet) ([]domain.TrendPoint, error) {
	sums := make(map[string]decimal.Decimal)
	for _, row := range table.Rows {
		if exclude.Has(row.Entity) {
			continue
		}
		sums[row.Date] = sums[row.Date].Add(decimal.NewFromFloat(row.Cases))
	}

	if len(sums) < 2 {
		return nil, fmt.Errorf("%w: need 2 distinct dates, got %d", constants.ErrInsufficientData, len(sums))
	}

	dates := make([]string, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]domain.TrendPoint, 0, len(dates))
	for _, d := range dates {
		points = append(points, domain.TrendPoint{
			Date:          d,
			CasesMillions: sums[d].Div(million).InexactFloat64(),
		})
	}
	return points, nil
}

// TrendWindow returns the last days complete points. The final point is
// dropped because the current day may still be incomplete.
func TrendWindow(points []domain.TrendPoint, days int) []domain.TrendPoint {
	end := len(points) - 1
	if end <= 0 || days <= 0 {
		return []domain.TrendPoint{}
	}
	start := end - days
	if start < 0 {
		start = 0
	}
	window := make([]domain.TrendPoint, end-start)
	copy(window, points[start:end])
	return window
}
