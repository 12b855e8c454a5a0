package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ougirez/covidboard/internal/pkg/cache"
	"github.com/ougirez/covidboard/internal/pkg/config"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/logger"
	"github.com/ougirez/covidboard/internal/service/dashboard"
	"github.com/ougirez/covidboard/internal/service/loader"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "covidboard",
	Short:         "COVID-19 case and fatality dashboards",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(configPath); err != nil {
			return err
		}
		return logger.Init(viper.GetString(constants.ViperLogModeKey))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (default ./covidboard.yaml)")
	rootCmd.AddCommand(serveCmd, reportCmd, tokenCmd)
}

// newDashboard wires the configured cache, loader and dashboard service.
func newDashboard(ctx context.Context) (*dashboard.Service, cache.Cache, error) {
	datasetCache, err := cache.FromConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("cache.FromConfig: %w", err)
	}

	svc := dashboard.NewDashboardService(
		loader.NewLoaderService(datasetCache, loader.OptionsFromConfig()),
		loader.SourcesFromConfig(),
		viper.GetString(constants.ViperSourceIndiaGeoKey),
	)
	return svc, datasetCache, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
