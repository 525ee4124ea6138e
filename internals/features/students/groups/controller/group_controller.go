package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/constants"
	"futbolokulu_backend/internals/features/students/groups/dto"
	model "futbolokulu_backend/internals/features/students/groups/model"
	studentModel "futbolokulu_backend/internals/features/students/students/model"
	userModel "futbolokulu_backend/internals/features/users/user/model"
	helper "futbolokulu_backend/internals/helpers"
)

type GroupController struct {
	DB *gorm.DB
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db}
}

type groupCount struct {
	GroupID uuid.UUID
	Total   int64
}

// GET /api/groups?active=true|false
func (gc *GroupController) List(c *fiber.Ctx) error {
	db := gc.DB.WithContext(c.UserContext())

	q := db.Model(&model.Group{})
	switch strings.ToLower(strings.TrimSpace(c.Query("active"))) {
	case "", "true", "1":
		q = q.Where("group_is_active = ?", true)
	case "false", "0":
		q = q.Where("group_is_active = ?", false)
	case "all":
	default:
		return helper.ErrField("active", "active must be true, false or all")
	}

	var rows []model.Group
	if err := q.Order("group_name ASC").Find(&rows).Error; err != nil {
		return helper.ErrPersistence("list groups", err)
	}

	// jumlah murid aktif per group
	var counts []groupCount
	if err := db.Model(&studentModel.Student{}).
		Select("student_group_id AS group_id, COUNT(*) AS total").
		Where("student_is_active = ? AND student_group_id IS NOT NULL", true).
		Group("student_group_id").
		Scan(&counts).Error; err != nil {
		return helper.ErrPersistence("count group students", err)
	}
	byGroup := make(map[uuid.UUID]int64, len(counts))
	for _, r := range counts {
		byGroup[r.GroupID] = r.Total
	}

	out := make([]dto.GroupResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToGroupResponse(&rows[i], byGroup[rows[i].GroupID]))
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /api/groups
func (gc *GroupController) Create(c *fiber.Ctx) error {
	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return err
	}

	m := req.ToModel()
	db := gc.DB.WithContext(c.UserContext())
	if m.GroupTrainerID != nil {
		var trainer userModel.UserModel
		err := db.Select("id", "role").Where("id = ?", *m.GroupTrainerID).Take(&trainer).Error
		if err != nil {
			if helper.IsRecordNotFound(err) {
				return helper.ErrField("trainerId", "trainer not found")
			}
			return helper.ErrPersistence("load trainer", err)
		}
		if !constants.CanManageTraining(trainer.Role) {
			return helper.ErrField("trainerId", "user cannot manage training")
		}
	}

	if err := db.Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.ErrField("name", "group name already exists")
		}
		return helper.ErrPersistence("create group", err)
	}
	return helper.JsonCreated(c, "Group created", dto.ToGroupResponse(&m, 0))
}
