package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group: kelompok latihan (cohort), mis. U10, U12.
type Group struct {
	GroupID          uuid.UUID  `gorm:"column:group_id;type:uuid;primaryKey" json:"id"`
	GroupName        string     `gorm:"column:group_name;type:varchar(80);not null;uniqueIndex" json:"name"`
	GroupAgeCategory *string    `gorm:"column:group_age_category;type:varchar(20)" json:"ageCategory,omitempty"`
	GroupTrainerID   *uuid.UUID `gorm:"column:group_trainer_id;type:uuid;index" json:"trainerId,omitempty"`
	GroupIsActive    bool       `gorm:"column:group_is_active;not null;default:true" json:"isActive"`

	GroupCreatedAt time.Time `gorm:"column:group_created_at;autoCreateTime" json:"createdAt"`
	GroupUpdatedAt time.Time `gorm:"column:group_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Group) TableName() string { return "training_groups" }

func (m *Group) BeforeCreate(tx *gorm.DB) error {
	if m.GroupID == uuid.Nil {
		m.GroupID = uuid.New()
	}
	return nil
}
