package controller

import (
	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/features/trainings/attendance/dto"
	"futbolokulu_backend/internals/features/trainings/attendance/service"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

type TrainingController struct {
	Service *service.TrainingService
}

func NewTrainingController(s *service.TrainingService) *TrainingController {
	return &TrainingController{Service: s}
}

// GET /api/trainings?groupId=&from=&to=
func (h *TrainingController) List(c *fiber.Ctx) error {
	f, err := dto.ParseTrainingFilter(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, dto.DefaultListLimit, dto.MaxListLimit)
	rows, pg, err := h.Service.List(c.UserContext(), f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.ToTrainingResponses(rows), pg)
}

// GET /api/trainings/:id
func (h *TrainingController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToTrainingResponse(m))
}

// POST /api/trainings
func (h *TrainingController) Create(c *fiber.Ctx) error {
	who, ok := helperAuth.CurrentUser(c)
	if !ok {
		return helper.ErrUnauthenticated("")
	}
	var req dto.CreateTrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	in, err := req.Parse()
	if err != nil {
		return err
	}
	m, err := h.Service.Create(c.UserContext(), who, in)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Training created", dto.ToTrainingResponse(m))
}

// PUT /api/trainings/:id/attendance
func (h *TrainingController) SaveAttendance(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	entries, err := req.Parse()
	if err != nil {
		return err
	}
	rows, err := h.Service.UpsertAttendance(c.UserContext(), id, entries)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Attendance saved", dto.ToAttendanceResponses(rows))
}
