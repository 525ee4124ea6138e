package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/features/finance/fee_types/controller"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
)

// Base: /api/fee-types (immutable, tidak ada update)
func FeeTypeRoutes(api fiber.Router, authMw fiber.Handler, db *gorm.DB) {
	h := controller.NewFeeTypeController(db)

	grp := api.Group("/fee-types", authMw)
	grp.Get("/", h.List)
	grp.Post("/", authMiddleware.RequireManagePayments(), h.Create)
}
