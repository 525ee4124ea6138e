package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Training: satu sesi latihan untuk satu group.
type Training struct {
	TrainingID              uuid.UUID  `gorm:"column:training_id;type:uuid;primaryKey" json:"id"`
	TrainingGroupID         uuid.UUID  `gorm:"column:training_group_id;type:uuid;not null;index:idx_trainings_group_starts,priority:1" json:"groupId"`
	TrainingTrainerID       *uuid.UUID `gorm:"column:training_trainer_id;type:uuid;index" json:"trainerId,omitempty"`
	TrainingTitle           string     `gorm:"column:training_title;type:varchar(120);not null" json:"title"`
	TrainingLocation        *string    `gorm:"column:training_location;type:varchar(120)" json:"location,omitempty"`
	TrainingStartsAt        time.Time  `gorm:"column:training_starts_at;not null;index:idx_trainings_group_starts,priority:2" json:"startsAt"`
	TrainingDurationMinutes int        `gorm:"column:training_duration_minutes;not null" json:"durationMinutes"`
	TrainingNotes           *string    `gorm:"column:training_notes;type:text" json:"notes,omitempty"`
	TrainingCreatedByID     uuid.UUID  `gorm:"column:training_created_by_id;type:uuid;not null" json:"createdById"`

	TrainingCreatedAt time.Time `gorm:"column:training_created_at;autoCreateTime" json:"createdAt"`
	TrainingUpdatedAt time.Time `gorm:"column:training_updated_at;autoUpdateTime" json:"updatedAt"`

	Attendance []Attendance `gorm:"foreignKey:AttendanceTrainingID;references:TrainingID" json:"attendance,omitempty"`
}

func (Training) TableName() string { return "trainings" }

func (m *Training) BeforeCreate(tx *gorm.DB) error {
	if m.TrainingID == uuid.Nil {
		m.TrainingID = uuid.New()
	}
	return nil
}

func (m *Training) EndsAt() time.Time {
	return m.TrainingStartsAt.Add(time.Duration(m.TrainingDurationMinutes) * time.Minute)
}
