package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	model "futbolokulu_backend/internals/features/notifications/notifications/model"
	"futbolokulu_backend/internals/features/notifications/notifications/service"
	helper "futbolokulu_backend/internals/helpers"
)

type NotificationController struct {
	Dispatcher *service.Dispatcher
	Reminders  *service.Reminders
}

func NewNotificationController(d *service.Dispatcher, r *service.Reminders) *NotificationController {
	return &NotificationController{Dispatcher: d, Reminders: r}
}

// POST /api/notifications/payment-reminders
func (h *NotificationController) PaymentReminders(c *fiber.Ctx) error {
	res, err := h.Reminders.SendPaymentReminders(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonBody(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Queued %d payment reminders", res.Count),
		"count":   res.Count,
		"skipped": res.Skipped,
	})
}

// GET /api/notifications?channel=&status=
func (h *NotificationController) List(c *fiber.Ctx) error {
	var f service.NotificationFilter
	if s := strings.TrimSpace(c.Query("channel")); s != "" {
		ch, err := model.ParseChannel(s)
		if err != nil {
			return helper.ErrField("channel", "channel must be EMAIL, SMS or IN_APP")
		}
		f.Channel = &ch
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("status"))); s != "" {
		st := model.Status(s)
		switch st {
		case model.StatusQueued, model.StatusSent, model.StatusFailed:
			f.Status = &st
		default:
			return helper.ErrField("status", "status must be QUEUED, SENT or FAILED")
		}
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, pg, err := h.Dispatcher.List(c.UserContext(), f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", rows, pg)
}
