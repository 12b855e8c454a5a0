package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/covidboard/internal/pkg/cache"
	"github.com/ougirez/covidboard/internal/service/dashboard"
)

type Controller struct {
	service *dashboard.Service
	cache   cache.Cache
}

func NewController(service *dashboard.Service, datasetCache cache.Cache) *Controller {
	if datasetCache == nil {
		datasetCache = cache.Noop{}
	}
	return &Controller{service: service, cache: datasetCache}
}

func (c *Controller) Healthz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
