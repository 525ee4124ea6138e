package controller

import (
	"github.com/gofiber/fiber/v2"

	"futbolokulu_backend/internals/features/students/students/dto"
	"futbolokulu_backend/internals/features/students/students/service"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

type StudentController struct {
	Service *service.StudentService
}

func NewStudentController(s *service.StudentService) *StudentController {
	return &StudentController{Service: s}
}

// GET /api/students
func (h *StudentController) List(c *fiber.Ctx) error {
	f, err := dto.ParseStudentFilter(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, dto.DefaultListLimit, dto.MaxListLimit)

	rows, pg, err := h.Service.List(c.UserContext(), f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.ToStudentResponses(rows), pg)
}

// GET /api/students/:id
func (h *StudentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToStudentResponse(m))
}

// POST /api/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	who, ok := helperAuth.CurrentUser(c)
	if !ok {
		return helper.ErrUnauthenticated("")
	}
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	in, err := req.Parse()
	if err != nil {
		return err
	}
	m, err := h.Service.Register(c.UserContext(), who, in)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Student registered", dto.ToStudentResponse(m))
}

// PATCH /api/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	in, err := req.Parse()
	if err != nil {
		return err
	}
	m, err := h.Service.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Student updated", dto.ToStudentResponse(m))
}

// DELETE /api/students/:id (soft)
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := h.Service.Deactivate(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Student deactivated", dto.ToStudentResponse(m))
}
