package route

import (
	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/features/students/students/controller"
	"futbolokulu_backend/internals/features/students/students/service"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
)

// Base: /api/students
func StudentRoutes(api fiber.Router, authMw fiber.Handler, svc *service.StudentService) {
	h := controller.NewStudentController(svc)
	canManage := authMiddleware.RequireManageStudents()

	students := api.Group("/students", authMw)
	students.Get("/", h.List)
	students.Get("/:id", h.Get)

	students.Post("/", canManage, h.Create)
	students.Patch("/:id", canManage, h.Update)
	students.Delete("/:id", canManage, h.Delete)
}
