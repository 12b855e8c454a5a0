package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()

	require.NoError(t, load(v, ""))

	assert.Equal(t, ":8080", v.GetString(constants.ViperServerAddrKey))
	assert.Equal(t, "memory", v.GetString(constants.ViperCacheBackendKey))
	assert.Equal(t, 15*time.Minute, v.GetDuration(constants.ViperCacheTTLKey))
	assert.Equal(t, 0, v.GetInt(constants.ViperFetchRetriesKey))
	assert.Contains(t, v.GetString(constants.ViperSourceIndiaKey), "states.csv")
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "covidboard.yaml")
	body := []byte("server:\n  addr: \":9090\"\ncache:\n  backend: redis\n  ttl: 1m\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("COVIDBOARD_CACHE_BACKEND", "none")
	v := viper.New()

	require.NoError(t, load(v, path))

	assert.Equal(t, ":9090", v.GetString(constants.ViperServerAddrKey))
	assert.Equal(t, time.Minute, v.GetDuration(constants.ViperCacheTTLKey))
	assert.Equal(t, "none", v.GetString(constants.ViperCacheBackendKey))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := load(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
