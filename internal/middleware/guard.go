package middleware

import (
	"github.com/labstack/echo/v4"

	"motocase/internal/common"
	"motocase/internal/models"
)

// RequireSession rejects requests that did not resolve to an identity.
// The 401 body is deliberately generic.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := common.GetIdentityFromContext(c.Request().Context()); !ok {
			return common.SendUnauthorizedError(c)
		}
		return next(c)
	}
}

// RequireSuperuser additionally restricts the route to admin and developer
// roles.
func RequireSuperuser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := common.GetIdentityFromContext(c.Request().Context())
		if !ok {
			return common.SendUnauthorizedError(c)
		}
		if !identity.IsSuperuser() {
			return common.SendForbiddenError(c)
		}
		return next(c)
	}
}

// RequireRole restricts the route to the given roles. Superusers always pass.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := common.GetIdentityFromContext(c.Request().Context())
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			if identity.IsSuperuser() {
				return next(c)
			}
			for _, role := range roles {
				if identity.Role == role {
					return next(c)
				}
			}
			return common.SendForbiddenError(c)
		}
	}
}
