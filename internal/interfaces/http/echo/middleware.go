package echo

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/auth"
)

const userClaimsKey = "user_claims"

// AccessTokenParser verifies a bearer token and returns the user embedded
// in it.
type AccessTokenParser interface {
	ParseAccessToken(token string) (auth.UserClaims, error)
}

// RequireAuth guards a route group with bearer-token auth and stashes the
// caller's claims on the request context.
func RequireAuth(parser AccessTokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, apiResponse{Error: &errorBody{
					Code:    "unauthorized",
					Message: "missing bearer token",
				}})
			}

			claims, err := parser.ParseAccessToken(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apiResponse{Error: &errorBody{
					Code:    "unauthorized",
					Message: "invalid or expired token",
				}})
			}

			c.Set(userClaimsKey, claims)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated caller's claims. Zero value when the
// route is not behind RequireAuth.
func CurrentUser(c echo.Context) auth.UserClaims {
	claims, _ := c.Get(userClaimsKey).(auth.UserClaims)
	return claims
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
