package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/spf13/viper"
)

type AuthTokenWrapper struct {
	Secret string `json:"secret"`
	jwt.StandardClaims
}

func signingKey() ([]byte, error) {
	key := viper.GetString(constants.ViperSigningKeyKey)
	if key == "" {
		return nil, fmt.Errorf("empty %s", constants.ViperSigningKeyKey)
	}
	return []byte(key), nil
}

// GenerateAuthToken signs the wrapper with HS256. A zero ExpiresAt is set to ttl from now.
func GenerateAuthToken(wrapper *AuthTokenWrapper, ttl time.Duration) (string, error) {
	key, err := signingKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	if wrapper.IssuedAt == 0 {
		wrapper.IssuedAt = now.Unix()
	}
	if wrapper.ExpiresAt == 0 && ttl > 0 {
		wrapper.ExpiresAt = now.Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, nil
}

// ParseAuthToken verifies raw. Without a configured signing key every token
// is rejected as unauthorized.
func ParseAuthToken(raw string) (*AuthTokenWrapper, error) {
	key, err := signingKey()
	if err != nil {
		return nil, constants.ErrUnauthorized
	}

	wrapper := new(AuthTokenWrapper)
	token, err := jwt.ParseWithClaims(raw, wrapper, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return nil, constants.ErrInvalidToken
	}

	return wrapper, nil
}
