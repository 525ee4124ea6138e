package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/features/finance/fee_types/dto"
	model "futbolokulu_backend/internals/features/finance/fee_types/model"
	groupModel "futbolokulu_backend/internals/features/students/groups/model"
	helper "futbolokulu_backend/internals/helpers"
)

type FeeTypeController struct {
	DB *gorm.DB
}

func NewFeeTypeController(db *gorm.DB) *FeeTypeController {
	return &FeeTypeController{DB: db}
}

// GET /api/fee-types?groupId=&active=
// groupId → fee type milik group tsb + fee type global (tanpa group).
func (fc *FeeTypeController) List(c *fiber.Ctx) error {
	q := fc.DB.WithContext(c.UserContext()).Model(&model.FeeType{})

	if s := strings.TrimSpace(c.Query("groupId")); s != "" {
		gid, err := uuid.Parse(s)
		if err != nil {
			return helper.ErrField("groupId", "groupId must be a valid UUID")
		}
		q = q.Where("(fee_type_group_id = ? OR fee_type_group_id IS NULL)", gid)
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("active"))) {
	case "":
	case "true", "1":
		q = q.Where("fee_type_is_active = ?", true)
	case "false", "0":
		q = q.Where("fee_type_is_active = ?", false)
	default:
		return helper.ErrField("active", "active must be true or false")
	}

	var rows []model.FeeType
	if err := q.Order("fee_type_name ASC").Find(&rows).Error; err != nil {
		return helper.ErrPersistence("list fee types", err)
	}
	out := make([]dto.FeeTypeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToFeeTypeResponse(&rows[i]))
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /api/fee-types
func (fc *FeeTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateFeeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	m, err := req.ToModel()
	if err != nil {
		return err
	}

	db := fc.DB.WithContext(c.UserContext())
	if m.FeeTypeGroupID != nil {
		var n int64
		if err := db.Model(&groupModel.Group{}).Where("group_id = ?", *m.FeeTypeGroupID).Count(&n).Error; err != nil {
			return helper.ErrPersistence("check group", err)
		}
		if n == 0 {
			return helper.ErrNotFound("group", m.FeeTypeGroupID.String())
		}
	}
	if err := db.Create(&m).Error; err != nil {
		return helper.ErrPersistence("create fee type", err)
	}
	return helper.JsonCreated(c, "Fee type created", dto.ToFeeTypeResponse(&m))
}
