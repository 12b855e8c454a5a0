package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/covidboard/internal/api"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

var skipWarmup bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipWarmup, "no-warmup", false, "do not preload the sources on start")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dashboardService, datasetCache, err := newDashboard(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := datasetCache.Close(); err != nil {
			logger.Warnf(ctx, "cache.Close: %s", err.Error())
		}
	}()

	if !skipWarmup {
		if err := dashboardService.Warmup(ctx); err != nil {
			logger.Errorf(ctx, "warmup failed, sources will load on demand: %s", err.Error())
		}
	}

	svc, err := api.NewAPIService(dashboardService, datasetCache)
	if err != nil {
		return err
	}

	addr := viper.GetString(constants.ViperServerAddrKey)
	errCh := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "listening on %s", addr)
		errCh <- svc.Serve(addr)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return svc.Shutdown(shutdownCtx)
}
