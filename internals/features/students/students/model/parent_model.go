package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParentRelation string

const (
	ParentRelationMother   ParentRelation = "MOTHER"
	ParentRelationFather   ParentRelation = "FATHER"
	ParentRelationGuardian ParentRelation = "GUARDIAN"
	ParentRelationOther    ParentRelation = "OTHER"
)

// Parent: wali murid; tepat satu is_primary per student (divalidasi di service).
type Parent struct {
	ParentID        uuid.UUID      `gorm:"column:parent_id;type:uuid;primaryKey" json:"id"`
	ParentStudentID uuid.UUID      `gorm:"column:parent_student_id;type:uuid;not null;index" json:"studentId"`
	ParentFirstName string         `gorm:"column:parent_first_name;type:varchar(80);not null" json:"firstName"`
	ParentLastName  string         `gorm:"column:parent_last_name;type:varchar(80);not null" json:"lastName"`
	ParentPhone     string         `gorm:"column:parent_phone;type:varchar(30);not null" json:"phone"`
	ParentEmail     *string        `gorm:"column:parent_email;type:varchar(255)" json:"email,omitempty"`
	ParentRelation  ParentRelation `gorm:"column:parent_relation;type:varchar(20);not null" json:"relation"`
	ParentIsPrimary bool           `gorm:"column:parent_is_primary;not null;default:false" json:"isPrimary"`

	ParentCreatedAt time.Time `gorm:"column:parent_created_at;autoCreateTime" json:"createdAt"`
	ParentUpdatedAt time.Time `gorm:"column:parent_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Parent) TableName() string { return "parents" }

func (m *Parent) BeforeCreate(tx *gorm.DB) error {
	if m.ParentID == uuid.Nil {
		m.ParentID = uuid.New()
	}
	return nil
}

func (m *Parent) FullName() string {
	return m.ParentFirstName + " " + m.ParentLastName
}
