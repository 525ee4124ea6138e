package details

import (
	"github.com/gofiber/fiber/v2"

	notificationRoute "futbolokulu_backend/internals/features/notifications/notifications/route"
	notificationService "futbolokulu_backend/internals/features/notifications/notifications/service"
)

func NotificationRoutes(api fiber.Router, authMw fiber.Handler, d *notificationService.Dispatcher, r *notificationService.Reminders) {
	notificationRoute.NotificationRoutes(api, authMw, d, r)
}
