// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "futbolokulu_backend/internals/features/users/auth/controller"
	"futbolokulu_backend/internals/features/users/auth/service"
	rateLimiter "futbolokulu_backend/internals/middlewares"
)

// Base: /api/auth
func AuthRoutes(api fiber.Router, authMw fiber.Handler, svc *service.AuthService) {
	authController := controller.NewAuthController(svc)

	baseAuth := api.Group("/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	// 🔐 Protected
	baseAuth.Get("/me", authMw, authController.Me)
	baseAuth.Post("/logout", authMw, authController.Logout)
}
