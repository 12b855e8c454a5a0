package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/covidboard/internal/domain/dto"
)

func (c *Controller) GetView(ctx echo.Context) error {
	var req dto.ViewRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	view, err := c.service.View(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, view)
}

func (c *Controller) GetGlobalOverview(ctx echo.Context) error {
	overview, err := c.service.GlobalOverview(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, overview)
}

func (c *Controller) GetCountryDetail(ctx echo.Context) error {
	var req dto.EntityRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	detail, err := c.service.CountryDetail(ctx.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, detail)
}

func (c *Controller) GetTrend(ctx echo.Context) error {
	var req dto.TrendRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	trend, err := c.service.Trend(ctx.Request().Context(), req.Window)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, trend)
}

func (c *Controller) GetFatalities(ctx echo.Context) error {
	var req dto.FatalitiesRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	ranking, err := c.service.Fatalities(ctx.Request().Context(), req.By, req.Limit)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ranking)
}

func (c *Controller) GetComparison(ctx echo.Context) error {
	var req dto.CompareRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	comparison, err := c.service.Compare(ctx.Request().Context(), req.Countries)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, comparison)
}

func (c *Controller) GetIndiaOverview(ctx echo.Context) error {
	overview, err := c.service.IndiaOverview(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, overview)
}

func (c *Controller) GetStateDetail(ctx echo.Context) error {
	var req dto.EntityRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	detail, err := c.service.StateDetail(ctx.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, detail)
}
