package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist: access token yang sudah logout (disimpan dalam bentuk hash).
type TokenBlacklist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TokenHash string         `gorm:"column:token_hash;size:64;not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time      `gorm:"index" json:"expired_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
