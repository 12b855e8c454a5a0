package stats

import (
	"math"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rate returns numerator/denominator*100 rounded to 2 places. A zero
// denominator gives an undefined rate instead of Inf or NaN.
func Rate(numerator, denominator float64) domain.Rate {
	if denominator == 0 || !finite(numerator) || !finite(denominator) {
		return domain.Rate{}
	}

	v := decimal.NewFromFloat(numerator).
		Div(decimal.NewFromFloat(denominator)).
		Mul(hundred).
		Round(2)

	return domain.Rate{Value: v.InexactFloat64(), Defined: true}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Totals builds the latest-value block for one row. Recovery figures are
// included only for datasets that carry them.
func Totals(row domain.TimeSeriesRow) domain.Totals {
	t := domain.Totals{
		Cases:        int64(row.Cases),
		Deaths:       int64(row.Deaths),
		FatalityRate: Rate(row.Deaths, row.Cases),
	}
	if row.HasRecovered {
		recovered := int64(row.Recovered)
		current := int64(row.Cases - row.Deaths - row.Recovered)
		recovery := Rate(row.Recovered, row.Cases)
		t.Recovered = &recovered
		t.Current = &current
		t.RecoveryRate = &recovery
	}
	return t
}
