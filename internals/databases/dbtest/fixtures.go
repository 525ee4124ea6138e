package dbtest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/constants"
	feeTypeModel "futbolokulu_backend/internals/features/finance/fee_types/model"
	groupModel "futbolokulu_backend/internals/features/students/groups/model"
	studentModel "futbolokulu_backend/internals/features/students/students/model"
	userModel "futbolokulu_backend/internals/features/users/user/model"
)

func User(t testing.TB, db *gorm.DB, name string, role constants.Role) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Name:         name,
		Email:        uuid.NewString()[:8] + "@futbolokulu.test",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Group(t testing.TB, db *gorm.DB, name string) *groupModel.Group {
	t.Helper()
	g := &groupModel.Group{GroupName: name, GroupIsActive: true}
	require.NoError(t, db.Create(g).Error)
	return g
}

// Student membuat murid + satu parent primary. groupID boleh nil.
func Student(t testing.TB, db *gorm.DB, first, last string, groupID *uuid.UUID, createdBy uuid.UUID) *studentModel.Student {
	t.Helper()
	s := &studentModel.Student{
		StudentFirstName:      first,
		StudentLastName:       last,
		StudentGroupID:        groupID,
		StudentIsActive:       true,
		StudentEnrollmentDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		StudentCreatedByID:    createdBy,
		Parents: []studentModel.Parent{{
			ParentFirstName: "Parent",
			ParentLastName:  last,
			ParentPhone:     "+905550000000",
			ParentRelation:  studentModel.ParentRelationMother,
			ParentIsPrimary: true,
		}},
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func Deactivate(t testing.TB, db *gorm.DB, s *studentModel.Student) {
	t.Helper()
	require.NoError(t, db.Model(&studentModel.Student{}).
		Where("student_id = ?", s.StudentID).
		Update("student_is_active", false).Error)
	s.StudentIsActive = false
}

func FeeType(t testing.TB, db *gorm.DB, name string, amount int64, period feeTypeModel.FeePeriod) *feeTypeModel.FeeType {
	t.Helper()
	f := &feeTypeModel.FeeType{
		FeeTypeName:     name,
		FeeTypeAmount:   decimal.NewFromInt(amount),
		FeeTypePeriod:   period,
		FeeTypeIsActive: true,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}
