package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/pkg/auth"
	"github.com/truckershub-backend/internal/pkg/errors"
	"github.com/truckershub-backend/internal/pkg/utils"
)

const (
	userLocalsKey     = "user_id"
	userNameLocalsKey = "user_name"
)

// TokenValidator resolves a bearer token to the signed-in user
type TokenValidator interface {
	ValidateToken(token string) (domain.UserIdentity, error)
}

// Auth rejects requests without a valid bearer token. SSE clients that cannot
// set headers may pass the token as ?access_token=.
func Auth(validator TokenValidator, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("access_token")
		if header := c.Get(fiber.HeaderAuthorization); header != "" {
			var err error
			if token, err = auth.ExtractTokenFromHeader(header); err != nil {
				return utils.SendError(c, errors.ErrUnauthorized)
			}
		}
		if token == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		user, err := validator.ValidateToken(token)
		if err != nil {
			logger.Debug("Rejected token", zap.String("path", c.Path()), zap.Error(err))
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(userLocalsKey, user.ID)
		c.Locals(userNameLocalsKey, user.DisplayName)
		return c.Next()
	}
}

// CurrentUser returns the identity set by Auth; anonymous when the route is public
func CurrentUser(c *fiber.Ctx) domain.UserIdentity {
	id, _ := c.Locals(userLocalsKey).(string)
	name, _ := c.Locals(userNameLocalsKey).(string)
	return domain.UserIdentity{ID: id, DisplayName: name}
}
