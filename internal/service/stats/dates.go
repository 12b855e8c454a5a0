package stats

import (
	"fmt"
	"sort"

	"github.com/ougirez/covidboard/internal/pkg/constants"
)

// DistinctDates returns the distinct date values in ascending order. Dates
// are expected to be ISO formatted so lexical order is chronological.
func DistinctDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	distinct := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		distinct = append(distinct, d)
	}
	sort.Strings(distinct)
	return distinct
}

func LatestDate(dates []string) (string, error) {
	distinct := DistinctDates(dates)
	if len(distinct) == 0 {
		return "", fmt.Errorf("%w: no dates", constants.ErrInsufficientData)
	}
	return distinct[len(distinct)-1], nil
}

// LatestTwoDates returns the most recent date and the one before it.
func LatestTwoDates(dates []string) (latest, previous string, err error) {
	distinct := DistinctDates(dates)
	if len(distinct) < 2 {
		return "", "", fmt.Errorf("%w: need 2 distinct dates, got %d", constants.ErrInsufficientData, len(distinct))
	}
	return distinct[len(distinct)-1], distinct[len(distinct)-2], nil
}
