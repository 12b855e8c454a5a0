package stats

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(entity, date string, cases, deaths float64) domain.TimeSeriesRow {
	return domain.TimeSeriesRow{Entity: entity, Date: date, Cases: cases, Deaths: deaths}
}

func testland() []domain.TimeSeriesRow {
	return []domain.TimeSeriesRow{
		row("Testland", "2020-03-01", 10, 0),
		row("Testland", "2020-03-02", 15, 1),
		row("Testland", "2020-03-03", 15, 1),
		row("Testland", "2020-03-04", 20, 2),
	}
}

func TestLatestDates(t *testing.T) {
	dates := []string{"2020-03-02", "2020-03-04", "2020-03-01", "2020-03-04", "2020-03-03"}

	latest, err := LatestDate(dates)
	require.NoError(t, err)
	assert.Equal(t, "2020-03-04", latest)

	latest, previous, err := LatestTwoDates(dates)
	require.NoError(t, err)
	assert.Equal(t, "2020-03-04", latest)
	assert.Equal(t, "2020-03-03", previous)

	t.Run("one distinct date", func(t *testing.T) {
		_, _, err := LatestTwoDates([]string{"2020-03-01", "2020-03-01"})
		assert.True(t, errors.Is(err, constants.ErrInsufficientData))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LatestDate(nil)
		assert.True(t, errors.Is(err, constants.ErrInsufficientData))
	})
}

func TestDeltasEndToEnd(t *testing.T) {
	rows := testland()

	cases, err := Deltas(rows, domain.ColumnCases)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 5, 0, 5}, cases)

	last := rows[len(rows)-1]
	assert.Equal(t, domain.Rate{Value: 10, Defined: true}, Rate(last.Deaths, last.Cases))
}

func TestDeltasReconstruction(t *testing.T) {
	rows := []domain.TimeSeriesRow{
		row("X", "2020-01-01", 3, 0),
		row("X", "2020-01-02", 9, 1),
		row("X", "2020-01-03", 8, 1),
		row("X", "2020-01-04", 40, 4),
		row("X", "2020-01-05", 41, 7),
	}

	for _, col := range []domain.Column{domain.ColumnCases, domain.ColumnDeaths} {
		deltas, err := Deltas(rows, col)
		require.NoError(t, err)
		require.Len(t, deltas, len(rows))

		var sum int64
		for _, d := range deltas {
			sum += d
		}
		first, last := rows[0].Value(col), rows[len(rows)-1].Value(col)
		assert.Equal(t, int64(last-first), sum, col.String())
	}
}

func TestDeltasPreconditions(t *testing.T) {
	_, err := Deltas(testland()[:1], domain.ColumnCases)
	assert.True(t, errors.Is(err, constants.ErrInsufficientData))

	unsorted := testland()
	unsorted[1], unsorted[2] = unsorted[2], unsorted[1]
	_, err = Deltas(unsorted, domain.ColumnCases)
	assert.True(t, errors.Is(err, constants.ErrUnsorted))
}

func TestDeltasTruncatesFractions(t *testing.T) {
	rows := []domain.TimeSeriesRow{row("X", "2020-01-01", 1.2, 0), row("X", "2020-01-02", 3.9, 0)}
	deltas, err := Deltas(rows, domain.ColumnCases)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2}, deltas)
}

func TestDailySeriesWithRecovered(t *testing.T) {
	rows := []domain.TimeSeriesRow{
		{Entity: "Goa", Date: "2020-06-01", Cases: 10, Deaths: 0, Recovered: 2, HasRecovered: true},
		{Entity: "Goa", Date: "2020-06-02", Cases: 14, Deaths: 1, Recovered: 5, HasRecovered: true},
	}

	series, err := DailySeries(rows)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, int64(4), series[1].Cases)
	assert.Equal(t, int64(1), series[1].Deaths)
	require.NotNil(t, series[1].Recovered)
	assert.Equal(t, int64(3), *series[1].Recovered)
	assert.Equal(t, int64(0), *series[0].Recovered)

	plain, err := DailySeries(testland())
	require.NoError(t, err)
	assert.Nil(t, plain[0].Recovered)
}

func TestRate(t *testing.T) {
	assert.Equal(t, domain.Rate{Value: 33.33, Defined: true}, Rate(1, 3))
	assert.Equal(t, domain.Rate{Value: 66.67, Defined: true}, Rate(2, 3))
	assert.Equal(t, domain.Rate{}, Rate(5, 0))
	assert.Equal(t, domain.Rate{}, Rate(0, 0))
	assert.Equal(t, "N/A", Rate(1, 0).String())

	t.Run("monotonic in numerator", func(t *testing.T) {
		prev := Rate(0, 977)
		for d := 1.0; d <= 977; d++ {
			cur := Rate(d, 977)
			require.True(t, cur.Defined)
			require.GreaterOrEqual(t, cur.Value, prev.Value, "d=%v", d)
			prev = cur
		}
	})
}

func TestTotals(t *testing.T) {
	totals := Totals(domain.TimeSeriesRow{Cases: 100, Deaths: 2, Recovered: 50, HasRecovered: true})
	assert.Equal(t, int64(48), *totals.Current)
	assert.Equal(t, 2.0, totals.FatalityRate.Value)
	assert.Equal(t, 50.0, totals.RecoveryRate.Value)

	zero := Totals(domain.TimeSeriesRow{})
	assert.False(t, zero.FatalityRate.Defined)
	assert.Nil(t, zero.RecoveryRate)
}

func globalTable() *domain.Table {
	return &domain.Table{Dataset: domain.DatasetGlobal, Rows: []domain.TimeSeriesRow{
		row("Aland", "2020-03-01", 1_000_000, 10),
		row("World", "2020-03-01", 3_234_567, 30),
		row("Borduria", "2020-03-01", 2_234_567, 20),
		row("International", "2020-03-01", 700, 7),
		row("Aland", "2020-03-02", 1_500_000, 15),
		row("Borduria", "2020-03-02", 2_500_001, 25),
		row("World", "2020-03-02", 4_000_701, 47),
		row("International", "2020-03-02", 700, 7),
		row("Curaçao", "2020-03-02", 0, 0),
	}}
}

func TestTakeSnapshot(t *testing.T) {
	table := globalTable()
	before := len(table.Rows)

	snap := TakeSnapshot(table, "2020-03-02", GlobalAggregates, GlobalNames)
	assert.Equal(t, "2020-03-02", snap.Date)
	require.Len(t, snap.Rows, 3)
	for _, r := range snap.Rows {
		assert.False(t, GlobalAggregates.Has(r.Entity))
	}
	assert.Equal(t, "curacao", snap.Rows[2].Key)
	assert.Equal(t, before, len(table.Rows))
	assert.Equal(t, "World", table.Rows[1].Entity)

	t.Run("count law", func(t *testing.T) {
		onDate := &domain.Table{}
		for _, r := range table.Rows {
			if r.Date == "2020-03-02" {
				onDate.Rows = append(onDate.Rows, r)
			}
		}
		distinct := len(Entities(onDate, nil))
		excludedPresent := distinct - len(Entities(onDate, GlobalAggregates))
		assert.Equal(t, distinct-excludedPresent, len(snap.Rows))
	})

	t.Run("first duplicate wins", func(t *testing.T) {
		dup := &domain.Table{Rows: []domain.TimeSeriesRow{row("A", "d", 1, 0), row("A", "d", 2, 0)}}
		s := TakeSnapshot(dup, "d", nil, GlobalNames)
		require.Len(t, s.Rows, 1)
		assert.Equal(t, int64(1), s.Rows[0].Cases)
	})
}

func TestIndiaSnapshotRenames(t *testing.T) {
	table := &domain.Table{Dataset: domain.DatasetIndia, Rows: []domain.TimeSeriesRow{
		{Entity: "India", Date: "2021-01-01", Cases: 100, HasRecovered: true},
		{Entity: "Andaman and Nicobar Islands", Date: "2021-01-01", Cases: 5, HasRecovered: true},
		{Entity: "State Unassigned", Date: "2021-01-01", Cases: 1, HasRecovered: true},
		{Entity: "Goa", Date: "2021-01-01", Cases: 9, Recovered: 4, HasRecovered: true},
	}}

	snap := TakeSnapshot(table, "2021-01-01", IndiaAggregates, IndiaNames)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "Andaman & Nicobar", snap.Rows[0].Entity)
	assert.Equal(t, "Andaman and Nicobar Islands", snap.Rows[0].Source().Entity)
	require.NotNil(t, snap.Rows[1].Recovered)
	assert.Equal(t, int64(4), *snap.Rows[1].Recovered)
	assert.Equal(t, "Andaman and Nicobar Islands", table.Rows[1].Entity)
}

func TestNameMapRoundTrip(t *testing.T) {
	pairs := IndiaNames.Pairs()
	require.NotEmpty(t, pairs)
	for _, p := range pairs {
		assert.Equal(t, p[1], IndiaNames.Normalize(p[0]))
		assert.Equal(t, p[0], IndiaNames.Denormalize(IndiaNames.Normalize(p[0])))
	}
	assert.Equal(t, "Goa", IndiaNames.Normalize("Goa"))
	assert.Equal(t, "Goa", IndiaNames.Denormalize("Goa"))
}

func TestKeyAndResolve(t *testing.T) {
	assert.Equal(t, "cote d'ivoire", Key("  Côte  d'Ivoire "))
	assert.Equal(t, "united states", Key("United States"))

	got, ok := Resolve("curacao", []string{"Chad", "Curaçao"})
	require.True(t, ok)
	assert.Equal(t, "Curaçao", got)

	_, ok = Resolve("atlantis", []string{"Chad"})
	assert.False(t, ok)
}

func TestTrend(t *testing.T) {
	points, err := Trend(globalTable(), GlobalAggregates)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2020-03-01", points[0].Date)
	assert.InDelta(t, 3.234567, points[0].CasesMillions, 1e-6)
	assert.InDelta(t, 4.000001, points[1].CasesMillions, 1e-6)

	_, err = Trend(&domain.Table{Rows: testland()[:1]}, nil)
	assert.True(t, errors.Is(err, constants.ErrInsufficientData))
}

func TestTrendWindow(t *testing.T) {
	points := make([]domain.TrendPoint, 40)
	for i := range points {
		points[i] = domain.TrendPoint{Date: fmt.Sprintf("2020-01-%02d", i+1), CasesMillions: float64(i)}
	}

	week := TrendWindow(points, WeekDays)
	require.Len(t, week, 7)
	assert.Equal(t, float64(32), week[0].CasesMillions)
	assert.Equal(t, float64(38), week[6].CasesMillions)

	month := TrendWindow(points, MonthDays)
	require.Len(t, month, 30)
	assert.Equal(t, float64(9), month[0].CasesMillions)

	short := TrendWindow(points[:4], WeekDays)
	assert.Len(t, short, 3)
	assert.Empty(t, TrendWindow(points[:1], WeekDays))
}

func TestRankFatalities(t *testing.T) {
	snap := domain.Snapshot{Date: "2020-05-01"}
	for i := 0; i < 25; i++ {
		r := row(fmt.Sprintf("E%02d", i), "2020-05-01", float64(1000-i*10), float64(i))
		snap.Rows = append(snap.Rows, domain.NewSnapshotRow(r, r.Entity, Key(r.Entity)))
	}
	zero := row("Nocase", "2020-05-01", 0, 0)
	snap.Rows = append(snap.Rows, domain.NewSnapshotRow(zero, zero.Entity, Key(zero.Entity)))

	byCount, byRate := RankFatalities(snap, DefaultRankingLimit)
	require.Len(t, byCount, 20)
	require.Len(t, byRate, 20)

	assert.Equal(t, "E24", byCount[19].Entity)
	assert.Equal(t, "E05", byCount[0].Entity)
	for i := 1; i < len(byCount); i++ {
		assert.LessOrEqual(t, byCount[i-1].Deaths, byCount[i].Deaths)
		assert.LessOrEqual(t, byRate[i-1].Rate, byRate[i].Rate)
	}
	for _, e := range byCount {
		assert.NotEqual(t, "Nocase", e.Entity)
	}

	t.Run("fewer than limit", func(t *testing.T) {
		small := domain.Snapshot{Rows: snap.Rows[:3]}
		c, r := RankFatalities(small, DefaultRankingLimit)
		assert.Len(t, c, 3)
		assert.Len(t, r, 3)
	})

	t.Run("ties keep snapshot order", func(t *testing.T) {
		a, b := row("A", "d", 10, 1), row("B", "d", 10, 1)
		tied := domain.Snapshot{Rows: []domain.SnapshotRow{
			domain.NewSnapshotRow(a, "A", "a"),
			domain.NewSnapshotRow(b, "B", "b"),
		}}
		c, _ := RankFatalities(tied, 20)
		assert.Equal(t, []string{"A", "B"}, []string{c[0].Entity, c[1].Entity})
	})
}

func TestCompare(t *testing.T) {
	series, err := Compare(globalTable(), []string{"borduria", "Curaçao"}, GlobalAggregates)
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "Borduria", series[0].Entity)
	assert.Equal(t, []domain.SeriesPoint{
		{Date: "2020-03-01", Cases: 2_234_567},
		{Date: "2020-03-02", Cases: 2_500_001},
	}, series[0].Points)
	assert.Empty(t, series[1].Points)

	_, err = Compare(globalTable(), []string{"World"}, GlobalAggregates)
	assert.True(t, errors.Is(err, constants.ErrNotFound))
}
