package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	database "futbolokulu_backend/internals/databases"
)

func BaseRoutes(app *fiber.App, d *Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Futbol Okulu API 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(c.UserContext(), d.DB); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().UTC().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    d.Config.Env,
		})
	})
}
