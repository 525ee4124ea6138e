package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "futbolokulu_backend/internals/features/finance/payments/model"
	helper "futbolokulu_backend/internals/helpers"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

const (
	SortByDueDate         = "dueDate"
	SortByAmount          = "amount"
	SortByStudentLastName = "student.lastName"
)

// PaymentFilter dipakai bersama oleh GET /payments (list + summary) dan DELETE /payments (bulk cancel).
type PaymentFilter struct {
	StudentID   *uuid.UUID
	GroupID     *uuid.UUID
	Status      *model.PaymentStatus
	AllStatuses bool // status=all → CANCELLED ikut
	Overdue     bool
	Search      string
}

type PaymentSort struct {
	Field string
	Desc  bool
}

func ParsePaymentFilter(c *fiber.Ctx) (PaymentFilter, error) {
	var f PaymentFilter

	if s := strings.TrimSpace(c.Query("studentId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, helper.ErrField("studentId", "studentId must be a valid UUID")
		}
		f.StudentID = &id
	}
	if s := strings.TrimSpace(c.Query("groupId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, helper.ErrField("groupId", "groupId must be a valid UUID")
		}
		f.GroupID = &id
	}

	switch s := strings.TrimSpace(c.Query("status")); {
	case s == "":
	case strings.EqualFold(s, "all"):
		f.AllStatuses = true
	default:
		st, err := model.ParsePaymentStatus(s)
		if err != nil {
			return f, helper.ErrField("status", err.Error())
		}
		f.Status = &st
	}

	switch strings.ToLower(strings.TrimSpace(c.Query("overdue"))) {
	case "true", "1", "yes":
		f.Overdue = true
	}

	f.Search = strings.TrimSpace(c.Query("search"))
	return f, nil
}

func ParsePaymentSort(c *fiber.Ctx) (PaymentSort, error) {
	s := PaymentSort{Field: SortByDueDate}

	switch field := strings.TrimSpace(c.Query("sortField")); field {
	case "", SortByDueDate:
	case SortByAmount:
		s.Field = SortByAmount
	case SortByStudentLastName, "lastName":
		s.Field = SortByStudentLastName
	default:
		return s, helper.ErrField("sortField", "sortField must be one of amount, dueDate, student.lastName")
	}

	switch dir := strings.ToLower(strings.TrimSpace(c.Query("sortDirection"))); dir {
	case "", "asc":
	case "desc":
		s.Desc = true
	default:
		return s, helper.ErrField("sortDirection", "sortDirection must be asc or desc")
	}
	return s, nil
}
