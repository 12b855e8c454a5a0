package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/covidboard/internal/pkg/logger"
)

func (c *Controller) PurgeCache(ctx echo.Context) error {
	purged, err := c.cache.Purge(ctx.Request().Context())
	if err != nil {
		return err
	}

	logger.Infof(ctx.Request().Context(), "purged %d cached datasets", purged)

	type response struct {
		Purged int64 `json:"purged"`
	}
	return ctx.JSON(http.StatusOK, response{Purged: purged})
}

func (c *Controller) Warmup(ctx echo.Context) error {
	if err := c.service.Warmup(ctx.Request().Context()); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
