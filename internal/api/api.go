package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/covidboard/internal/api/controller"
	"github.com/ougirez/covidboard/internal/pkg/cache"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/logger"
	"github.com/ougirez/covidboard/internal/service/dashboard"
	"github.com/spf13/viper"
)

type APIService struct {
	router           *echo.Echo
	dashboardService *dashboard.Service
}

// Serve blocks until the server stops. A graceful Shutdown is not an error.
func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

func NewAPIService(dashboardService *dashboard.Service, datasetCache cache.Cache) (*APIService, error) {
	svc := &APIService{router: echo.New(), dashboardService: dashboardService}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.INFO)
	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			ctx := logger.WithFields(c.Request().Context(), constants.CtxKeyRequestID, id)
			c.SetRequest(c.Request().WithContext(ctx))
		},
	}))
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: viper.GetStringSlice(constants.ViperServerCORSOriginsKey),
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	cntrl := controller.NewController(dashboardService, datasetCache)

	svc.router.GET("/healthz", cntrl.Healthz)

	api := svc.router.Group("/api/v1")
	api.GET("/view", cntrl.GetView)

	global := api.Group("/global")
	global.GET("/overview", cntrl.GetGlobalOverview)
	global.GET("/countries/:name", cntrl.GetCountryDetail)
	global.GET("/trend", cntrl.GetTrend)
	global.GET("/fatalities", cntrl.GetFatalities)
	global.GET("/compare", cntrl.GetComparison)

	india := api.Group("/india")
	india.GET("/overview", cntrl.GetIndiaOverview)
	india.GET("/states/:name", cntrl.GetStateDetail)

	admin := api.Group("/admin", svc.AdminMiddleware)
	admin.POST("/cache/purge", cntrl.PurgeCache)
	admin.POST("/warmup", cntrl.Warmup)

	return svc, nil
}
