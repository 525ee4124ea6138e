package route

import (
	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/features/users/user/controller"
	"futbolokulu_backend/internals/features/users/user/service"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
)

// Base: /api/users (admin only)
func UserRoutes(api fiber.Router, authMw fiber.Handler, svc *service.UserService) {
	h := &controller.UserController{Svc: svc}

	grp := api.Group("/users", authMw, authMiddleware.RequireAdmin())
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
}
