package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/features/users/auth/dto"
	"futbolokulu_backend/internals/features/users/auth/service"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := ac.Svc.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return helper.JsonOK(c, "Login successful", res)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	id, ok := helperAuth.CurrentUser(c)
	if !ok {
		return helper.ErrUnauthenticated("")
	}
	user, err := ac.Svc.Me(c.UserContext(), id.UserID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(user))
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(helperAuth.LocRawToken).(string)
	if raw == "" {
		return helper.ErrUnauthenticated("")
	}
	exp, _ := c.Locals(helperAuth.LocTokenExp).(time.Time)
	if err := ac.Svc.Logout(c.UserContext(), raw, exp); err != nil {
		return err
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logged out", nil)
}
