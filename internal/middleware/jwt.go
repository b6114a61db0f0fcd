package middleware

import (
	"errors"
	"net/http"

	"maintdesk/internal/common"
	"maintdesk/internal/services"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// Echo context keys set for authenticated requests
const (
	UserContextKey     = "user"
	UsernameContextKey = "username"
	RoleContextKey     = "role"
)

// JWTMiddleware validates the bearer token and attaches its claims to the echo
// context and the request context. A missing or malformed Authorization
// header is 401; a token that fails verification is 403.
func JWTMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(jwtSecret),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    UserContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.TokenClaims)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return
			}
			c.Set(UsernameContextKey, claims.Username)
			c.Set(RoleContextKey, claims.Role)
			ctx := common.WithIdentity(c.Request().Context(), claims.UserID, claims.Username, claims.Role)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing or malformed token")
			}
			return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
		},
	})
}

// ClaimsFromContext returns the claims stored by JWTMiddleware
func ClaimsFromContext(c echo.Context) (*services.TokenClaims, bool) {
	token, ok := c.Get(UserContextKey).(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*services.TokenClaims)
	return claims, ok
}
