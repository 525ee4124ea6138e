package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"futbolokulu_backend/internals/features/users/auth/dto"
	authModel "futbolokulu_backend/internals/features/users/auth/model"
	userModel "futbolokulu_backend/internals/features/users/user/model"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

/* ==========================
   Const & Types
========================== */

const accessTTLDefault = 24 * time.Hour

type AuthService struct {
	DB     *gorm.DB
	Log    *zap.Logger
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func NewAuthService(db *gorm.DB, log *zap.Logger, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		DB:     db,
		Log:    log.Named("auth"),
		Secret: secret,
		TTL:    ttl,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

/* ==========================
   Login / Token
========================== */

func (s *AuthService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrUnauthenticated("Invalid email or password")
		}
		return nil, helper.ErrPersistence("find user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		s.Log.Info("login rejected", zap.String("email", email))
		return nil, helper.ErrUnauthenticated("Invalid email or password")
	}
	if !user.IsActive {
		return nil, helper.ErrUnauthenticated("Account is disabled")
	}

	token, exp, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", user.ID).
		Update("last_login_at", now).Error; err != nil {
		s.Log.Warn("stamp last_login_at failed", zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.ToUserResponse(&user),
	}, nil
}

// IssueToken: HS256, claims sub/name/role/iat/exp.
func (s *AuthService) IssueToken(u *userModel.UserModel) (string, time.Time, error) {
	if strings.TrimSpace(s.Secret) == "" {
		return "", time.Time{}, errors.New("JWT secret is empty")
	}
	now := s.Now()
	exp := now.Add(s.TTL)
	claims := jwt.MapClaims{
		"sub":  u.ID.String(),
		"name": u.Name,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return signed, exp, nil
}

/* ==========================
   Logout / Blacklist
========================== */

func (s *AuthService) Logout(ctx context.Context, rawToken string, expiredAt time.Time) error {
	if expiredAt.IsZero() {
		expiredAt = s.Now().Add(s.TTL)
	}
	row := authModel.TokenBlacklist{
		TokenHash: helperAuth.TokenHash(rawToken, s.Secret),
		ExpiredAt: expiredAt.UTC(),
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_hash"}}, DoNothing: true}).
		Create(&row).Error
	return helper.ErrPersistence("blacklist token", err)
}

func (s *AuthService) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&authModel.TokenBlacklist{}).
		Where("token_hash = ?", helperAuth.TokenHash(rawToken, s.Secret)).
		Count(&n).Error
	if err != nil {
		return false, helper.ErrPersistence("check blacklist", err)
	}
	return n > 0, nil
}

/* ==========================
   User lookup
========================== */

// IsActiveUser dipakai middleware: user harus masih ada & aktif.
func (s *AuthService) IsActiveUser(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&n).Error
	if err != nil {
		return false, helper.ErrPersistence("check user", err)
	}
	return n > 0, nil
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).Take(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("user", id.String())
		}
		return nil, helper.ErrPersistence("find user", err)
	}
	return &user, nil
}
