package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/validation"
	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer        = "basseinpay"
	tokenDuration = 24 * time.Hour
	devSecret     = "basseinpay-dev-secret"
)

// Claims carries the signed-in reseller or operator.
type Claims struct {
	User types.UserWithAuth `json:"user"`
	jwt.RegisteredClaims
}

func secret() []byte {
	s := helper.EnvOr("JWT_SECRET", "")
	if s == "" {
		logger.Warning.Println("JWT_SECRET not set, tokens use the development secret")
		s = devSecret
	}
	return []byte(s)
}

func GenerateToken(user types.UserWithAuth) (string, *time.Time, error) {
	now := time.Now()
	exp := now.Add(tokenDuration)

	user.Anonymous = false
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := token.SignedString(secret())
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, &exp, nil
}

// ValidateToken accepts a raw token or an "Authorization: Bearer" value.
func ValidateToken(raw string) (*types.UserWithAuth, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return secret(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject != claims.User.ID {
		return nil, errors.New("invalid token: subject does not match user")
	}

	if err := validation.Validate(claims.User); err != nil {
		return nil, err
	}
	claims.User.Anonymous = false
	return &claims.User, nil
}
