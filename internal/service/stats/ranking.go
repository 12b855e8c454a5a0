package stats

import (
	"sort"

	"github.com/ougirez/covidboard/internal/domain"
)

const DefaultRankingLimit = 20

type rankCandidate struct {
	entry domain.RankEntry
	rate  float64
}

// RankFatalities ranks snapshot entities with at least one case by deaths
// and by fatality rate. Both lists are ascending and hold the top limit
// entries, so the highest value is last. Ties keep snapshot order.
func RankFatalities(snapshot domain.Snapshot, limit int) (byCount, byRate []domain.RankEntry) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	candidates := make([]rankCandidate, 0, len(snapshot.Rows))
	for _, row := range snapshot.Rows {
		src := row.Source()
		if src.Cases < 1 {
			continue
		}
		candidates = append(candidates, rankCandidate{
			entry: domain.RankEntry{
				Entity: row.Entity,
				Cases:  row.Cases,
				Deaths: row.Deaths,
				Rate:   Rate(src.Deaths, src.Cases).Value,
			},
			rate: src.Deaths / src.Cases * 100,
		})
	}

	byCount = tail(candidates, limit, func(c rankCandidate) float64 { return float64(c.entry.Deaths) })
	byRate = tail(candidates, limit, func(c rankCandidate) float64 { return c.rate })
	return byCount, byRate
}

func tail(candidates []rankCandidate, limit int, value func(rankCandidate) float64) []domain.RankEntry {
	sorted := make([]rankCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return value(sorted[i]) < value(sorted[j]) })

	if len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}

	entries := make([]domain.RankEntry, len(sorted))
	for i, c := range sorted {
		entries[i] = c.entry
	}
	return entries
}
