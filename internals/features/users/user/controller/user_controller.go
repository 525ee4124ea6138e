package controller

import (
	"github.com/gofiber/fiber/v2"

	authDTO "futbolokulu_backend/internals/features/users/auth/dto"
	"futbolokulu_backend/internals/features/users/user/dto"
	"futbolokulu_backend/internals/features/users/user/service"
	helper "futbolokulu_backend/internals/helpers"
)

type UserController struct {
	Svc *service.UserService
}

// POST /api/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	u, err := uc.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "User created", authDTO.ToUserResponse(u))
}

// GET /api/users?role=&page=&limit=
func (uc *UserController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := uc.Svc.List(c.UserContext(), c.Query("role"), p)
	if err != nil {
		return err
	}
	out := make([]authDTO.UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, authDTO.ToUserResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, p))
}
