package dto

import (
	"strings"

	"futbolokulu_backend/internals/constants"
	userModel "futbolokulu_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=ADMIN ACCOUNTING TRAINER SECRETARY"`
}

func (r CreateUserRequest) ToModel(hash string) userModel.UserModel {
	return userModel.UserModel{
		Name:         strings.TrimSpace(r.Name),
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		PasswordHash: hash,
		Role:         constants.Role(r.Role),
		IsActive:     true,
	}
}
