package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/constants"
	"futbolokulu_backend/internals/features/users/user/dto"
	userModel "futbolokulu_backend/internals/features/users/user/model"
	helper "futbolokulu_backend/internals/helpers"
)

type UserService struct {
	DB *gorm.DB
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*userModel.UserModel, error) {
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if _, err := constants.ParseRole(req.Role); err != nil {
		return nil, helper.ErrField("role", err.Error())
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, helper.ErrPersistence("hash password", err)
	}

	u := req.ToModel(hash)
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.ErrField("email", "email already registered")
		}
		return nil, helper.ErrPersistence("create user", err)
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context, role string, p helper.Paging) ([]userModel.UserModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&userModel.UserModel{})
	if r := strings.TrimSpace(role); r != "" {
		parsed, err := constants.ParseRole(r)
		if err != nil {
			return nil, 0, helper.ErrField("role", err.Error())
		}
		q = q.Where("role = ?", string(parsed))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, helper.ErrPersistence("count users", err)
	}
	var rows []userModel.UserModel
	if err := q.Order("name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, helper.ErrPersistence("list users", err)
	}
	return rows, total, nil
}

// EnsureAdmin membuat admin pertama kalau tabel users masih kosong.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).Count(&n).Error; err != nil {
		return false, helper.ErrPersistence("count users", err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.Create(ctx, dto.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(constants.RoleAdmin),
	}); err != nil {
		return false, err
	}
	return true, nil
}
