package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"userhub/internal/delivery/http/response"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/service"
)

// Context keys set by Authenticate for handlers to use.
const (
	KeyAccountID = "accountID"
	KeyEmail     = "email"
)

// AuthMiddleware provides middleware for bearer token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token on protected routes.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, domainerrors.ErrTokenInvalid.ErrorCode(), "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, domainerrors.ErrTokenInvalid.ErrorCode(), "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return response.Unauthorized(c, domainerrors.ErrTokenInvalid.ErrorCode(), "Invalid or expired token")
		}

		c.Set(KeyAccountID, claims.AccountID)
		c.Set(KeyEmail, claims.Email)

		return next(c)
	}
}
