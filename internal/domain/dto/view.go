package dto

const (
	AnalysisOverview   = "overview"
	AnalysisFatalities = "fatalities"
	AnalysisTrend      = "trend"
	AnalysisCompare    = "compare"

	DashboardGlobal = "global"
	DashboardIndia  = "india"

	WindowWeek  = "week"
	WindowMonth = "month"

	ByNumber = "number"
	ByRate   = "rate"
)

// ViewRequest carries the three selections of the dashboard host: the
// analysis, its sub-view and the chosen entity.
type ViewRequest struct {
	Analysis  string   `query:"analysis" validate:"required,oneof=overview fatalities trend compare"`
	Dashboard string   `query:"dashboard" validate:"omitempty,oneof=global india"`
	Entity    string   `query:"entity" validate:"omitempty,max=128"`
	Window    string   `query:"window" validate:"omitempty,oneof=week month"`
	By        string   `query:"by" validate:"omitempty,oneof=number rate"`
	Countries []string `query:"country" validate:"omitempty,max=20,dive,required"`
}

type EntityRequest struct {
	Name string `param:"name" validate:"required,max=128"`
}

type TrendRequest struct {
	Window string `query:"window" validate:"omitempty,oneof=week month"`
}

type FatalitiesRequest struct {
	By    string `query:"by" validate:"omitempty,oneof=number rate"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=250"`
}

type CompareRequest struct {
	Countries []string `query:"country" validate:"required,min=1,max=20,dive,required"`
}
