package constants

import (
	"fmt"
	"strings"
)

// Role: himpunan role tertutup; semua switch di bawah harus exhaustive.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleAccounting Role = "ACCOUNTING"
	RoleTrainer    Role = "TRAINER"
	RoleSecretary  Role = "SECRETARY"
)

// Nama capability (dipakai di pesan 403)
const (
	CapManagePayments = "canManagePayments"
	CapManageStudents = "canManageStudents"
	CapManageTraining = "canManageTraining"
	CapAdmin          = "isAdmin"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var AllRoles = []Role{
	RoleAdmin,
	RoleAccounting,
	RoleTrainer,
	RoleSecretary,
}

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleAccounting, RoleTrainer, RoleSecretary:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func CanManagePayments(r Role) bool {
	switch r {
	case RoleAdmin, RoleAccounting:
		return true
	case RoleTrainer, RoleSecretary:
		return false
	default:
		return false
	}
}

func CanManageStudents(r Role) bool {
	switch r {
	case RoleAdmin, RoleSecretary:
		return true
	case RoleAccounting, RoleTrainer:
		return false
	default:
		return false
	}
}

func CanManageTraining(r Role) bool {
	switch r {
	case RoleAdmin, RoleTrainer:
		return true
	case RoleAccounting, RoleSecretary:
		return false
	default:
		return false
	}
}

func IsAdmin(r Role) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleAccounting, RoleTrainer, RoleSecretary:
		return false
	default:
		return false
	}
}
