package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "futbolokulu_backend/internals/helpers"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// StudentFilter: Active nil → semua.
type StudentFilter struct {
	Search  string
	GroupID *uuid.UUID
	Active  *bool
}

// ParseStudentFilter: ?search= ?groupId= ?active=true|false|all (default true).
func ParseStudentFilter(c *fiber.Ctx) (StudentFilter, error) {
	f := StudentFilter{Search: strings.TrimSpace(c.Query("search"))}

	if g := strings.TrimSpace(c.Query("groupId")); g != "" {
		id, err := uuid.Parse(g)
		if err != nil {
			return f, helper.ErrField("groupId", "groupId must be a valid UUID")
		}
		f.GroupID = &id
	}

	switch strings.ToLower(strings.TrimSpace(c.Query("active"))) {
	case "", "true", "1":
		t := true
		f.Active = &t
	case "false", "0":
		v := false
		f.Active = &v
	case "all":
	default:
		return f, helper.ErrField("active", "active must be true, false or all")
	}
	return f, nil
}
