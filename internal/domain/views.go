package domain

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type Totals struct {
	Cases        int64  `json:"cases"`
	Deaths       int64  `json:"deaths"`
	Recovered    *int64 `json:"recovered,omitempty"`
	Current      *int64 `json:"current,omitempty"`
	FatalityRate Rate   `json:"fatality_rate"`
	RecoveryRate *Rate  `json:"recovery_rate,omitempty"`
}

type GlobalOverview struct {
	Date      string        `json:"date"`
	World     *Totals       `json:"world,omitempty"`
	Map       []SnapshotRow `json:"map"`
	Countries []string      `json:"countries"`
}

type EntityDetail struct {
	Entity string       `json:"entity"`
	Date   string       `json:"date"`
	Latest Totals       `json:"latest"`
	Daily  []DailyDelta `json:"daily"`
}

type IndiaOverview struct {
	Date         string        `json:"date"`
	PreviousDate string        `json:"previous_date"`
	GeoJSONURL   string        `json:"geojson_url,omitempty"`
	National     *Totals       `json:"national,omitempty"`
	Change       *DailyDelta   `json:"change,omitempty"`
	Map          []SnapshotRow `json:"map"`
	States       []string      `json:"states"`
}

type FatalityRanking struct {
	Date    string      `json:"date"`
	By      string      `json:"by"`
	Entries []RankEntry `json:"entries"`
}

type TrendView struct {
	Window string       `json:"window"`
	Points []TrendPoint `json:"points"`
}

type ComparisonView struct {
	Series []EntitySeries `json:"series"`
}

// View is the result of one UI host selection; exactly one field is set.
type View struct {
	Analysis   string           `json:"analysis"`
	Dashboard  string           `json:"dashboard,omitempty"`
	Global     *GlobalOverview  `json:"global,omitempty"`
	India      *IndiaOverview   `json:"india,omitempty"`
	Detail     *EntityDetail    `json:"detail,omitempty"`
	Fatalities *FatalityRanking `json:"fatalities,omitempty"`
	Trend      *TrendView       `json:"trend,omitempty"`
	Comparison *ComparisonView  `json:"comparison,omitempty"`
}
