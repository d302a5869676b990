package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/pkg/utils"
	"github.com/railconnect/internal/usecase"
)

const principalKey = "principal"

// SessionToken извлекает токен сессии из заголовка или cookie.
func SessionToken(c *fiber.Ctx) string {
	if token := c.Get("X-Session-Token"); token != "" {
		return token
	}
	return c.Cookies("session_token")
}

// Auth превращает токен сессии в Principal и кладёт его в locals.
// Решение о доступе принимается здесь один раз; обработчики и use case
// дальше работают с готовым Principal.
func Auth(authUC *usecase.AuthUseCase, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := authUC.Resolve(c.Context(), SessionToken(c))
		if err != nil {
			logger.Error("Failed to resolve session", zap.Error(err))
			return utils.SendError(c, err)
		}
		if principal.Anonymous() {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// Principal возвращает аутентифицированную личность запроса; nil, если
// маршрут не проходил через Auth.
func Principal(c *fiber.Ctx) *domain.Principal {
	principal, _ := c.Locals(principalKey).(*domain.Principal)
	return principal
}
