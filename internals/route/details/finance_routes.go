package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeTypeRoute "futbolokulu_backend/internals/features/finance/fee_types/route"
	paymentRoute "futbolokulu_backend/internals/features/finance/payments/route"
	paymentService "futbolokulu_backend/internals/features/finance/payments/service"
)

// FinanceRoutes: /api/fee-types + /api/payments.
func FinanceRoutes(api fiber.Router, authMw fiber.Handler, db *gorm.DB, ledger *paymentService.Ledger) {
	feeTypeRoute.FeeTypeRoutes(api, authMw, db)
	paymentRoute.PaymentRoutes(api, authMw, ledger)
}
