package middleware

import (
	"net/http"
	"strings"

	httpdto "github.com/vibast-solutions/ms-go-skillbase/app/dto/http"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const ContextKeyClaims = "claims"

type sessionVerifier interface {
	Verify(tokenString string) (*service.Claims, error)
}

type AuthMiddleware struct {
	tokens sessionVerifier
}

func NewAuthMiddleware(tokens sessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			logrus.Debug("Missing authorization header")
			return unauthorized(c, "missing authorization header")
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logrus.Debug("Invalid authorization header format")
			return unauthorized(c, "invalid authorization header format")
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			logrus.Debug("Invalid or expired session token")
			return unauthorized(c, service.ErrInvalidSession.Error())
		}

		c.Set(ContextKeyClaims, claims)
		return next(c)
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth, or nil.
func ClaimsFromContext(c echo.Context) *service.Claims {
	claims, _ := c.Get(ContextKeyClaims).(*service.Claims)
	return claims
}

func unauthorized(c echo.Context, reason string) error {
	return c.JSON(http.StatusUnauthorized, httpdto.Failure("Unauthorized", reason))
}
