package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "futbolokulu_backend/internals/features/users/auth/route"
	authService "futbolokulu_backend/internals/features/users/auth/service"
	userRoute "futbolokulu_backend/internals/features/users/user/route"
	userService "futbolokulu_backend/internals/features/users/user/service"
)

// AuthRoutes: /api/auth (login publik) + /api/users (admin).
func AuthRoutes(api fiber.Router, authMw fiber.Handler, auth *authService.AuthService, users *userService.UserService) {
	authRoute.AuthRoutes(api, authMw, auth)
	userRoute.UserRoutes(api, authMw, users)
}
