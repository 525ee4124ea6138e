package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "futbolokulu_backend/internals/features/students/groups/model"
)

type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=80"`
	AgeCategory *string `json:"ageCategory" validate:"omitempty,max=20"`
	TrainerID   *string `json:"trainerId" validate:"omitempty,uuid"`
}

func (r CreateGroupRequest) ToModel() model.Group {
	m := model.Group{
		GroupName:     strings.TrimSpace(r.Name),
		GroupIsActive: true,
	}
	if r.AgeCategory != nil {
		if s := strings.TrimSpace(*r.AgeCategory); s != "" {
			m.GroupAgeCategory = &s
		}
	}
	if r.TrainerID != nil {
		if id, err := uuid.Parse(strings.TrimSpace(*r.TrainerID)); err == nil {
			m.GroupTrainerID = &id
		}
	}
	return m
}

type GroupResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	AgeCategory  *string    `json:"ageCategory,omitempty"`
	TrainerID    *uuid.UUID `json:"trainerId,omitempty"`
	IsActive     bool       `json:"isActive"`
	StudentCount int64      `json:"studentCount"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func ToGroupResponse(m *model.Group, studentCount int64) GroupResponse {
	return GroupResponse{
		ID:           m.GroupID,
		Name:         m.GroupName,
		AgeCategory:  m.GroupAgeCategory,
		TrainerID:    m.GroupTrainerID,
		IsActive:     m.GroupIsActive,
		StudentCount: studentCount,
		CreatedAt:    m.GroupCreatedAt,
	}
}
