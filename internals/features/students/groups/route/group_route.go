package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/features/students/groups/controller"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
)

// Base: /api/groups
func GroupRoutes(api fiber.Router, authMw fiber.Handler, db *gorm.DB) {
	h := controller.NewGroupController(db)

	grp := api.Group("/groups", authMw)
	grp.Get("/", h.List)
	grp.Post("/", authMiddleware.RequireManageStudents(), h.Create)
}
