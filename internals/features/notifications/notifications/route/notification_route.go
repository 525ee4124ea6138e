package route

import (
	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/features/notifications/notifications/controller"
	"futbolokulu_backend/internals/features/notifications/notifications/service"
	rateLimiter "futbolokulu_backend/internals/middlewares"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
)

// Base: /api/notifications
func NotificationRoutes(api fiber.Router, authMw fiber.Handler, d *service.Dispatcher, r *service.Reminders) {
	h := controller.NewNotificationController(d, r)

	n := api.Group("/notifications", authMw)
	n.Get("/", authMiddleware.RequireAdmin(), h.List)
	n.Post("/payment-reminders", authMiddleware.RequireManagePayments(), rateLimiter.BulkRateLimiter(), h.PaymentReminders)
}
