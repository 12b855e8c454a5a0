package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an admin token for the cache endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := viper.GetString(constants.ViperSecretKey)
		if secret == "" {
			return fmt.Errorf("%s is not configured", constants.ViperSecretKey)
		}

		token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{
			Secret:         secret,
			StandardClaims: jwt.StandardClaims{Id: uuid.NewString(), Subject: "admin"},
		}, tokenTTL)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
