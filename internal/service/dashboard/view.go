package dashboard

import (
	"context"
	"fmt"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/domain/dto"
	"github.com/ougirez/covidboard/internal/pkg/constants"
)

// View resolves one selection of the dashboard host into the matching view.
// An overview with an entity becomes the detail of that country or state.
func (s *Service) View(ctx context.Context, req dto.ViewRequest) (*domain.View, error) {
	view := &domain.View{Analysis: req.Analysis}

	var err error
	switch req.Analysis {
	case dto.AnalysisOverview:
		view.Dashboard = req.Dashboard
		if view.Dashboard == "" {
			view.Dashboard = dto.DashboardGlobal
		}
		err = s.overview(ctx, view, req.Entity)
	case dto.AnalysisFatalities:
		view.Fatalities, err = s.Fatalities(ctx, req.By, 0)
	case dto.AnalysisTrend:
		view.Trend, err = s.Trend(ctx, req.Window)
	case dto.AnalysisCompare:
		countries := req.Countries
		if len(countries) == 0 && req.Entity != "" {
			countries = []string{req.Entity}
		}
		view.Comparison, err = s.Compare(ctx, countries)
	default:
		return nil, fmt.Errorf("%w: unknown analysis %q", constants.ErrBadRequest, req.Analysis)
	}
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *Service) overview(ctx context.Context, view *domain.View, entity string) (err error) {
	switch {
	case view.Dashboard == dto.DashboardGlobal && entity == "":
		view.Global, err = s.GlobalOverview(ctx)
	case view.Dashboard == dto.DashboardGlobal:
		view.Detail, err = s.CountryDetail(ctx, entity)
	case view.Dashboard == dto.DashboardIndia && entity == "":
		view.India, err = s.IndiaOverview(ctx)
	case view.Dashboard == dto.DashboardIndia:
		view.Detail, err = s.StateDetail(ctx, entity)
	default:
		err = fmt.Errorf("%w: unknown dashboard %q", constants.ErrBadRequest, view.Dashboard)
	}
	return err
}
