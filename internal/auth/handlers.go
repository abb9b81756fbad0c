package auth

import (
	"context"

	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/middleware"
	"solarvest-backend/internal/pkg/apperr"
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// Login POST /api/auth/login — admin email+password login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, apperr.Unauthorized, ErrCredentialsRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.LoginAdmin(body.Email, body.Password)
	if err != nil {
		switch err {
		case ErrCredentialsRequired:
			return response.Error(c, apperr.Unauthorized, err.Error(), fiber.StatusBadRequest, nil)
		case ErrInvalidCredentials, ErrAdminOnly:
			return response.Error(c, apperr.Unauthorized, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			return response.FromError(c, err)
		}
	}
	return h.establishSession(c, user)
}

// LoginInvestor POST /api/auth/login-investor — national id + password login.
func (h *Handlers) LoginInvestor(c *fiber.Ctx) error {
	var body struct {
		NationalID string `json:"national_id"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, apperr.Unauthorized, ErrCredentialsRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.LoginInvestor(body.NationalID, body.Password)
	if err != nil {
		switch err {
		case ErrCredentialsRequired:
			return response.Error(c, apperr.Unauthorized, err.Error(), fiber.StatusBadRequest, nil)
		case ErrInvalidCredentials:
			return response.Error(c, apperr.Unauthorized, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			return response.FromError(c, err)
		}
	}
	return h.establishSession(c, user)
}

func (h *Handlers) establishSession(c *fiber.Ctx, user *domain.User) error {
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.UserID.String(),
		Fullname: user.Fullname,
		Email:    user.Email,
		Role:     user.Role,
	})

	if err := h.Rdb.SAdd(context.Background(), userSessionsPrefix+user.UserID.String(), sessionID).Err(); err != nil {
		return response.Error(c, apperr.Internal, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{"user": user}, nil)
}

// Me GET /api/auth/me — return the current session user with a fresh balance.
func (h *Handlers) Me(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var user domain.User
	if err := h.Service.DB.Where("user_id = ?", actor.UserID).First(&user).Error; err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/auth/logout — drop session from Redis, clear cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	actor := middleware.GetActor(c)

	ctx := context.Background()
	if actor != nil && sessionID != "" {
		_ = h.Rdb.SRem(ctx, userSessionsPrefix+actor.UserID.String(), sessionID).Err()
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}
