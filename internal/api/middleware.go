package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/utils"
	"github.com/spf13/viper"
)

// AdminMiddleware accepts a signed admin token from the secret cookie or
// from a bearer Authorization header.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		raw := ""
		if cookie, err := ctx.Cookie(constants.CookieKeySecretToken); err == nil {
			raw = cookie.Value
		} else if header := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
			raw = strings.TrimPrefix(header, "Bearer ")
		}
		if raw == "" {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(raw)
		if err != nil {
			return err
		}

		secret := viper.GetString(constants.ViperSecretKey)
		if secret == "" || token.Secret != secret {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}
