package auth

import (
	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/constants"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

// RequireCapability: 401 kalau belum login, 403 kalau role tidak memenuhi predicate.
// Dipasang sebelum handler; tidak ada query DB sebelum lolos cek ini.
func RequireCapability(capability string, allowed func(constants.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := helperAuth.CurrentUser(c)
		if !ok {
			return helper.ErrUnauthenticated("Unauthorized")
		}
		if !allowed(id.Role) {
			return helper.ErrForbidden(capability)
		}
		return c.Next()
	}
}

func RequireManagePayments() fiber.Handler {
	return RequireCapability(constants.CapManagePayments, constants.CanManagePayments)
}

func RequireManageStudents() fiber.Handler {
	return RequireCapability(constants.CapManageStudents, constants.CanManageStudents)
}

func RequireManageTraining() fiber.Handler {
	return RequireCapability(constants.CapManageTraining, constants.CanManageTraining)
}

func RequireAdmin() fiber.Handler {
	return RequireCapability(constants.CapAdmin, constants.IsAdmin)
}
