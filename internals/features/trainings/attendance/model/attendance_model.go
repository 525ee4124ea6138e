package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	st := AttendanceStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown attendance status %q", s)
	}
	return st, nil
}

// Attendance: satu baris per (training, student); upsert menimpa status/note.
type Attendance struct {
	AttendanceID         uuid.UUID        `gorm:"column:attendance_id;type:uuid;primaryKey" json:"id"`
	AttendanceTrainingID uuid.UUID        `gorm:"column:attendance_training_id;type:uuid;not null;uniqueIndex:uq_attendance_training_student,priority:1" json:"trainingId"`
	AttendanceStudentID  uuid.UUID        `gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendance_training_student,priority:2;index" json:"studentId"`
	AttendanceStatus     AttendanceStatus `gorm:"column:attendance_status;type:varchar(10);not null" json:"status"`
	AttendanceNote       *string          `gorm:"column:attendance_note;type:text" json:"note,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"createdAt"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Attendance) TableName() string { return "attendances" }

func (m *Attendance) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
