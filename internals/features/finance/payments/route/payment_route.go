// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/features/finance/payments/controller"
	"futbolokulu_backend/internals/features/finance/payments/service"
	rateLimiter "futbolokulu_backend/internals/middlewares"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
)

// Base: /api/payments
func PaymentRoutes(api fiber.Router, authMw fiber.Handler, ledger *service.Ledger) {
	h := controller.NewPaymentController(ledger)
	canManage := authMiddleware.RequireManagePayments()

	payments := api.Group("/payments", authMw)

	// 👀 read (semua role yang login)
	payments.Get("/", h.List)
	payments.Get("/:id", h.Get)

	// 💰 mutasi (canManagePayments)
	payments.Post("/", canManage, h.Create)
	payments.Delete("/", canManage, h.BulkCancel)
	payments.Post("/bulk", canManage, rateLimiter.BulkRateLimiter(), h.Bulk)
	payments.Patch("/:id", canManage, h.Update)
	payments.Post("/:id/record", canManage, h.Record)
}
