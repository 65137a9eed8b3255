package middleware

import (
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-skillbase/app/dto/http"
	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequireRole lets the request through only for sessions holding one of roles.
// It must run after RequireAuth.
func RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Let CORS preflight pass.
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			claims := ClaimsFromContext(c)
			if claims == nil {
				logrus.Debug("Role check without session claims")
				return unauthorized(c, service.ErrInvalidSession.Error())
			}

			if _, ok := allowed[claims.Role]; !ok {
				logrus.WithFields(logrus.Fields{
					"account_id": claims.AccountID,
					"role":       claims.Role,
				}).Debug("Role not allowed")
				return c.JSON(http.StatusForbidden, httpdto.Failure("Forbidden", service.ErrPermissionDenied.Error()))
			}
			return next(c)
		}
	}
}
