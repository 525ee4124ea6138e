// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/features/finance/payments/dto"
	"futbolokulu_backend/internals/features/finance/payments/service"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

type PaymentController struct {
	Ledger *service.Ledger
}

func NewPaymentController(l *service.Ledger) *PaymentController {
	return &PaymentController{Ledger: l}
}

func actor(c *fiber.Ctx) (helperAuth.Identity, error) {
	id, ok := helperAuth.CurrentUser(c)
	if !ok {
		return helperAuth.Identity{}, helper.ErrUnauthenticated("")
	}
	return id, nil
}

/* =========================================================
   GET /api/payments
========================================================= */

func (h *PaymentController) List(c *fiber.Ctx) error {
	f, err := dto.ParsePaymentFilter(c)
	if err != nil {
		return err
	}
	sort, err := dto.ParsePaymentSort(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, dto.DefaultListLimit, dto.MaxListLimit)

	res, err := h.Ledger.List(c.UserContext(), f, p, sort)
	if err != nil {
		return err
	}
	now := h.Ledger.Clock()
	return helper.JsonBody(c, fiber.StatusOK, fiber.Map{
		"success":    true,
		"payments":   dto.ToPaymentResponses(res.Payments, now),
		"pagination": res.Pagination,
		"summary":    res.Summary,
	})
}

/* =========================================================
   POST /api/payments: single / installment plan
========================================================= */

func (h *PaymentController) Create(c *fiber.Ctx) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	in, err := req.Parse()
	if err != nil {
		return err
	}

	res, err := h.Ledger.CreatePayments(c.UserContext(), who, in)
	if err != nil {
		// student / fee type tidak ada → 400 di endpoint ini
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	msg := "Payment created successfully"
	if res.Count > 1 {
		msg = fmt.Sprintf("Installment plan created with %d payments", res.Count)
	}
	return helper.JsonBody(c, fiber.StatusCreated, fiber.Map{
		"success":  true,
		"message":  msg,
		"count":    res.Count,
		"planId":   res.PlanID,
		"payments": dto.ToPaymentResponses(res.Payments, h.Ledger.Clock()),
	})
}

/* =========================================================
   DELETE /api/payments: bulk cancel by filter
========================================================= */

func (h *PaymentController) BulkCancel(c *fiber.Ctx) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	f, err := dto.ParsePaymentFilter(c)
	if err != nil {
		return err
	}
	n, err := h.Ledger.BulkCancel(c.UserContext(), who, f)
	if err != nil {
		return err
	}
	return helper.JsonBody(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Successfully cancelled %d payments", n),
		"count":   n,
	})
}

/* =========================================================
   POST /api/payments/bulk: bulk_charge | bulk_collect
========================================================= */

func (h *PaymentController) Bulk(c *fiber.Ctx) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.BulkPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	switch req.NormalizedAction() {
	case dto.ActionBulkCharge:
		in, err := req.ParseCharge()
		if err != nil {
			return err
		}
		res, err := h.Ledger.BulkCharge(c.UserContext(), who, in)
		if err != nil {
			return err
		}
		return helper.JsonBody(c, fiber.StatusCreated, fiber.Map{
			"success":  true,
			"message":  fmt.Sprintf("Successfully charged %d students", res.Count),
			"count":    res.Count,
			"payments": dto.ToPaymentResponses(res.Payments, h.Ledger.Clock()),
		})

	case dto.ActionBulkCollect:
		in, err := req.ParseCollect()
		if err != nil {
			return err
		}
		res, err := h.Ledger.BulkCollect(c.UserContext(), who, in)
		if err != nil {
			return err
		}
		skipped := make([]string, 0, len(res.SkippedIDs))
		for _, id := range res.SkippedIDs {
			skipped = append(skipped, id.String())
		}
		return helper.JsonBody(c, fiber.StatusOK, fiber.Map{
			"success":    true,
			"message":    fmt.Sprintf("Successfully collected %d payments", res.Count),
			"count":      res.Count,
			"payments":   dto.ToPaymentResponses(res.Payments, h.Ledger.Clock()),
			"skippedIds": skipped,
		})

	default:
		return helper.ErrField("action", "action must be bulk_charge or bulk_collect")
	}
}

/* =========================================================
   GET /api/payments/:id
========================================================= */

func (h *PaymentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	p, events, err := h.Ledger.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonBody(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"payment": dto.ToPaymentDetail(p, events, h.Ledger.Clock()),
	})
}

/* =========================================================
   PATCH /api/payments/:id
========================================================= */

func (h *PaymentController) Update(c *fiber.Ctx) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	in, err := req.Parse()
	if err != nil {
		return err
	}
	p, err := h.Ledger.Update(c.UserContext(), who, id, in)
	if err != nil {
		return err
	}
	return helper.JsonBody(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"message": "Payment updated",
		"payment": dto.ToPaymentResponse(p, h.Ledger.Clock()),
	})
}

/* =========================================================
   POST /api/payments/:id/record
========================================================= */

func (h *PaymentController) Record(c *fiber.Ctx) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	in, err := req.Parse()
	if err != nil {
		return err
	}
	p, err := h.Ledger.RecordPayment(c.UserContext(), who, id, in)
	if err != nil {
		return err
	}
	return helper.JsonBody(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"message": "Payment recorded",
		"payment": dto.ToPaymentResponse(p, h.Ledger.Clock()),
	})
}
