package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type Dataset string

const (
	DatasetGlobal     Dataset = "global"
	DatasetFatalities Dataset = "fatalities"
	DatasetIndia      Dataset = "india"
)

type Column int

const (
	ColumnCases Column = iota
	ColumnDeaths
	ColumnRecovered
)

func (c Column) String() string {
	switch c {
	case ColumnCases:
		return "cases"
	case ColumnDeaths:
		return "deaths"
	case ColumnRecovered:
		return "recovered"
	}
	return "unknown"
}

// TimeSeriesRow is one cumulative reading for one entity on one date.
type TimeSeriesRow struct {
	Entity       string  `json:"entity"`
	Date         string  `json:"date"`
	Cases        float64 `json:"cases"`
	Deaths       float64 `json:"deaths"`
	Recovered    float64 `json:"recovered,omitempty"`
	HasRecovered bool    `json:"-"`
}

func (r TimeSeriesRow) Value(c Column) float64 {
	switch c {
	case ColumnDeaths:
		return r.Deaths
	case ColumnRecovered:
		return r.Recovered
	default:
		return r.Cases
	}
}

type Table struct {
	Dataset   Dataset
	SourceURL string
	FetchedAt time.Time
	Rows      []TimeSeriesRow
}

// Dates returns every date value in row order, duplicates included.
func (t *Table) Dates() []string {
	dates := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		dates = append(dates, r.Date)
	}
	return dates
}

// EntityRows returns the rows of one entity in table order.
func (t *Table) EntityRows(entity string) []TimeSeriesRow {
	var rows []TimeSeriesRow
	for _, r := range t.Rows {
		if r.Entity == entity {
			rows = append(rows, r)
		}
	}
	return rows
}

type SnapshotRow struct {
	Entity    string `json:"entity"`
	Key       string `json:"key"`
	Cases     int64  `json:"cases"`
	Deaths    int64  `json:"deaths"`
	Recovered *int64 `json:"recovered,omitempty"`
	raw       TimeSeriesRow
}

func NewSnapshotRow(row TimeSeriesRow, entity, key string) SnapshotRow {
	s := SnapshotRow{
		Entity: entity,
		Key:    key,
		Cases:  int64(row.Cases),
		Deaths: int64(row.Deaths),
		raw:    row,
	}
	if row.HasRecovered {
		r := int64(row.Recovered)
		s.Recovered = &r
	}
	return s
}

// Source is the row the snapshot entry was built from, with the source name.
func (s SnapshotRow) Source() TimeSeriesRow {
	return s.raw
}

type Snapshot struct {
	Date string        `json:"date"`
	Rows []SnapshotRow `json:"rows"`
}

type DailyDelta struct {
	Date      string `json:"date"`
	Cases     int64  `json:"cases"`
	Deaths    int64  `json:"deaths"`
	Recovered *int64 `json:"recovered,omitempty"`
}

// Rate is a percentage rounded to two decimals. It is undefined when the
// denominator was zero and then marshals as "N/A".
type Rate struct {
	Value   float64
	Defined bool
}

const NotApplicable = "N/A"

func (r Rate) String() string {
	if !r.Defined {
		return NotApplicable
	}
	b, _ := json.Marshal(r.Value)
	return string(b)
}

func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return json.Marshal(NotApplicable)
	}
	return json.Marshal(r.Value)
}

func (r *Rate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != NotApplicable {
			return fmt.Errorf("invalid rate %q", s)
		}
		*r = Rate{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Rate{Value: v, Defined: true}
	return nil
}

type TrendPoint struct {
	Date          string  `json:"date"`
	CasesMillions float64 `json:"cases_millions"`
}

type RankEntry struct {
	Entity string  `json:"entity"`
	Cases  int64   `json:"cases"`
	Deaths int64   `json:"deaths"`
	Rate   float64 `json:"rate"`
}

type SeriesPoint struct {
	Date  string `json:"date"`
	Cases int64  `json:"cases"`
}

type EntitySeries struct {
	Entity string        `json:"entity"`
	Points []SeriesPoint `json:"points"`
}
