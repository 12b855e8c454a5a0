package loader

import (
	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/spf13/viper"
)

// Schema names the source columns that feed a TimeSeriesRow. Recovered is
// empty for datasets that do not report recoveries.
type Schema struct {
	Date      string
	Entity    string
	Cases     string
	Deaths    string
	Recovered string
}

var (
	GlobalSchema = Schema{
		Date:   "date",
		Entity: "location",
		Cases:  "total_cases",
		Deaths: "total_deaths",
	}
	IndiaSchema = Schema{
		Date:      "Date",
		Entity:    "State",
		Cases:     "Confirmed",
		Deaths:    "Deceased",
		Recovered: "Recovered",
	}
)

type Source struct {
	Dataset domain.Dataset
	URL     string
	Schema  Schema
}

// SourcesFromConfig returns the configured sources keyed by dataset.
func SourcesFromConfig() map[domain.Dataset]Source {
	return map[domain.Dataset]Source{
		domain.DatasetGlobal: {
			Dataset: domain.DatasetGlobal,
			URL:     viper.GetString(constants.ViperSourceGlobalKey),
			Schema:  GlobalSchema,
		},
		domain.DatasetFatalities: {
			Dataset: domain.DatasetFatalities,
			URL:     viper.GetString(constants.ViperSourceFatalitiesKey),
			Schema:  GlobalSchema,
		},
		domain.DatasetIndia: {
			Dataset: domain.DatasetIndia,
			URL:     viper.GetString(constants.ViperSourceIndiaKey),
			Schema:  IndiaSchema,
		},
	}
}
