package route

import (
	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/features/trainings/attendance/controller"
	"futbolokulu_backend/internals/features/trainings/attendance/service"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
)

// Base: /api/trainings
func TrainingRoutes(api fiber.Router, authMw fiber.Handler, svc *service.TrainingService) {
	h := controller.NewTrainingController(svc)
	canManage := authMiddleware.RequireManageTraining()

	tr := api.Group("/trainings", authMw)
	tr.Get("/", h.List)
	tr.Get("/:id", h.Get)

	tr.Post("/", canManage, h.Create)
	tr.Put("/:id/attendance", canManage, h.SaveAttendance)
}
