package stats

import (
	"sort"

	"github.com/ougirez/covidboard/internal/domain"
)

// TakeSnapshot returns one row per entity for date, skipping excluded
// aggregates and renaming entities through names. The table is not modified.
func TakeSnapshot(table *domain.Table, date string, exclude ExclusionSet, names NameMap) domain.Snapshot {
	snapshot := domain.Snapshot{Date: date}
	seen := make(map[string]struct{})

	for _, row := range table.Rows {
		if row.Date != date || exclude.Has(row.Entity) {
			continue
		}
		if _, ok := seen[row.Entity]; ok {
			continue
		}
		seen[row.Entity] = struct{}{}

		name := names.Normalize(row.Entity)
		snapshot.Rows = append(snapshot.Rows, domain.NewSnapshotRow(row, name, Key(name)))
	}

	return snapshot
}

// Pick returns the first row of entity on date.
func Pick(table *domain.Table, date, entity string) (domain.TimeSeriesRow, bool) {
	for _, row := range table.Rows {
		if row.Date == date && row.Entity == entity {
			return row, true
		}
	}
	return domain.TimeSeriesRow{}, false
}

// Entities returns the distinct entity names of the table minus exclude, sorted.
func Entities(table *domain.Table, exclude ExclusionSet) []string {
	seen := make(map[string]struct{})
	entities := make([]string, 0)
	for _, row := range table.Rows {
		if exclude.Has(row.Entity) {
			continue
		}
		if _, ok := seen[row.Entity]; ok {
			continue
		}
		seen[row.Entity] = struct{}{}
		entities = append(entities, row.Entity)
	}
	sort.Strings(entities)
	return entities
}

// SortedByDate returns a copy of rows ordered ascending by date.
func SortedByDate(rows []domain.TimeSeriesRow) []domain.TimeSeriesRow {
	sorted := make([]domain.TimeSeriesRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}
