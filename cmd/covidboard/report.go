package main

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/ougirez/covidboard/internal/domain/dto"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/spf13/cobra"
)

var reportReq dto.ViewRequest

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print one dashboard view as JSON",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportReq.Analysis, "analysis", dto.AnalysisOverview, "overview | fatalities | trend | compare")
	f.StringVar(&reportReq.Dashboard, "dashboard", dto.DashboardGlobal, "global | india")
	f.StringVar(&reportReq.Entity, "entity", "", "country or state to detail")
	f.StringVar(&reportReq.Window, "window", dto.WindowWeek, "week | month")
	f.StringVar(&reportReq.By, "by", dto.ByNumber, "number | rate")
	f.StringSliceVar(&reportReq.Countries, "country", nil, "countries to compare")
}

func runReport(cmd *cobra.Command, args []string) error {
	reportReq.Analysis = strings.ToLower(reportReq.Analysis)
	if err := validator.New().Struct(reportReq); err != nil {
		return fmt.Errorf("%w: %s", constants.ErrBadRequest, err.Error())
	}

	dashboardService, datasetCache, err := newDashboard(cmd.Context())
	if err != nil {
		return err
	}
	defer datasetCache.Close()

	view, err := dashboardService.View(cmd.Context(), reportReq)
	if err != nil {
		return err
	}

	out, err := sonic.ConfigStd.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("sonic.MarshalIndent: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
