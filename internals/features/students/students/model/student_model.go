package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL: Student (soft delete via is_active)
// =========================================================

type Student struct {
	StudentID        uuid.UUID  `gorm:"column:student_id;type:uuid;primaryKey" json:"id"`
	StudentFirstName string     `gorm:"column:student_first_name;type:varchar(80);not null" json:"firstName"`
	StudentLastName  string     `gorm:"column:student_last_name;type:varchar(80);not null;index" json:"lastName"`
	StudentPhone     *string    `gorm:"column:student_phone;type:varchar(30)" json:"phone,omitempty"`
	StudentBirthDate *time.Time `gorm:"column:student_birth_date" json:"birthDate,omitempty"`

	// FK → training_groups(group_id), nullable
	StudentGroupID *uuid.UUID `gorm:"column:student_group_id;type:uuid;index" json:"groupId,omitempty"`

	StudentIsActive       bool      `gorm:"column:student_is_active;not null;default:true;index" json:"isActive"`
	StudentEnrollmentDate time.Time `gorm:"column:student_enrollment_date;not null" json:"enrollmentDate"`

	// FK → users(id), immutable setelah create
	StudentCreatedByID uuid.UUID `gorm:"column:student_created_by_id;type:uuid;not null" json:"createdById"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"createdAt"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"updatedAt"`

	Parents []Parent `gorm:"foreignKey:ParentStudentID;references:StudentID" json:"parents,omitempty"`
}

func (Student) TableName() string { return "students" }

func (m *Student) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	if m.StudentEnrollmentDate.IsZero() {
		m.StudentEnrollmentDate = time.Now().UTC()
	}
	return nil
}

func (m *Student) FullName() string {
	return m.StudentFirstName + " " + m.StudentLastName
}

// PrimaryParent: nil kalau parents belum di-preload.
func (m *Student) PrimaryParent() *Parent {
	for i := range m.Parents {
		if m.Parents[i].ParentIsPrimary {
			return &m.Parents[i]
		}
	}
	return nil
}
