package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDContextKey = "user_id"

// Identity resolves the caller from an optional HS256 bearer token whose
// subject is the user id. Requests without a token continue anonymously; a
// token that cannot be verified is rejected with 401.
func Identity(secret []byte) echo.MiddlewareFunc {
	keyFunc := func(*jwt.Token) (any, error) {
		return secret, nil
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			claims := &jwt.RegisteredClaims{}
			token, err := parser.ParseWithClaims(strings.TrimSpace(raw), claims, keyFunc)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			c.Set(userIDContextKey, claims.Subject)
			return next(c)
		}
	}
}

// UserID returns the authenticated user, or nil for anonymous requests.
func UserID(c echo.Context) *string {
	id, ok := c.Get(userIDContextKey).(string)
	if !ok || id == "" {
		return nil
	}
	return &id
}
