package middleware

import (
	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"

// Actor is the resolved caller identity handlers work with.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// RequireAuth ensures a user is in the session. Returns 401 with standard
// error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetActor(c) == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the session user has the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if actor.Role != domain.RoleAdmin {
			return response.Unauthorized(c, "Admin access required")
		}
		return c.Next()
	}
}

// GetActor resolves the session user from Locals; nil when not logged in or
// the stored shape is unusable.
func GetActor(c *fiber.Ctx) *Actor {
	u := c.Locals(userLocal)
	if u == nil {
		return nil
	}
	m, ok := u.(map[string]interface{})
	if !ok {
		return nil
	}
	rawID, _ := m["user_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil
	}
	role, _ := m["role"].(string)
	return &Actor{UserID: id, Role: role}
}
