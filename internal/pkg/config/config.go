package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/spf13/viper"
)

const envPrefix = "COVIDBOARD"

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperServerAddrKey, ":8080")
	v.SetDefault(constants.ViperServerCORSOriginsKey, []string{"http://localhost:3000"})
	v.SetDefault(constants.ViperLogModeKey, "dev")

	v.SetDefault(constants.ViperSourceGlobalKey, "https://covid.ourworldindata.org/data/ecdc/full_data.csv")
	v.SetDefault(constants.ViperSourceFatalitiesKey, "https://raw.githubusercontent.com/owid/covid-19-data/master/public/data/owid-covid-data.csv")
	v.SetDefault(constants.ViperSourceIndiaKey, "https://api.covid19india.org/csv/latest/states.csv")
	v.SetDefault(constants.ViperSourceIndiaGeoKey, "https://gist.githubusercontent.com/jbrobst/56c13bbbf9d97d187fea01ca62ea5112/raw/e388c4cae20aa53cb5090210a42ebb9b765c0a36/india_states.geojson")

	v.SetDefault(constants.ViperFetchTimeoutKey, 30*time.Second)
	v.SetDefault(constants.ViperFetchRetriesKey, 0)
	v.SetDefault(constants.ViperFetchRetryIntervalKey, time.Second)

	v.SetDefault(constants.ViperCacheBackendKey, "memory")
	v.SetDefault(constants.ViperCacheTTLKey, 15*time.Minute)
	v.SetDefault(constants.ViperRedisAddrKey, "localhost:6379")
	v.SetDefault(constants.ViperPostgresDSNKey, "")

	v.SetDefault(constants.ViperSecretKey, "")
	v.SetDefault(constants.ViperSigningKeyKey, "")
}

// Load configures the global viper instance: defaults, then the optional
// config file, then COVIDBOARD_* environment variables.
func Load(path string) error {
	return load(viper.GetViper(), path)
}

func load(v *viper.Viper, path string) error {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("covidboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/covidboard")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("viper.ReadInConfig: %w", err)
		}
	}

	return nil
}
