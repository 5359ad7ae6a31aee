package middleware

import (
	"context"
	"net/http"

	"gstbill/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTConfig builds the echo-jwt configuration. On success the subject
// claim lands on the request context as the user id; every failure maps
// to a bare 401.
func JWTConfig(jwtSecret string) echojwt.Config {
	return echojwt.Config{
		SigningKey:    []byte(jwtSecret),
		SigningMethod: "HS256",
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return
			}
			sub, err := claims.GetSubject()
			if err != nil {
				return
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				return
			}
			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}
