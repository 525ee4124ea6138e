package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM: periode tagihan
// =========================================================

type FeePeriod string

const (
	FeePeriodMonthly   FeePeriod = "MONTHLY"
	FeePeriodQuarterly FeePeriod = "QUARTERLY"
	FeePeriodYearly    FeePeriod = "YEARLY"
	FeePeriodOneTime   FeePeriod = "ONE_TIME"
)

func (p FeePeriod) Valid() bool {
	switch p {
	case FeePeriodMonthly, FeePeriodQuarterly, FeePeriodYearly, FeePeriodOneTime:
		return true
	default:
		return false
	}
}

// MonthsInterval: jarak antar cicilan (bulan). Periode kosong/tak dikenal → 1.
func (p FeePeriod) MonthsInterval() int {
	switch p {
	case FeePeriodMonthly:
		return 1
	case FeePeriodQuarterly:
		return 3
	case FeePeriodYearly:
		return 12
	case FeePeriodOneTime:
		return 1
	default:
		return 1
	}
}

// =========================================================
// MODEL: fee type (reference data, immutable)
// =========================================================

type FeeType struct {
	FeeTypeID       uuid.UUID       `gorm:"column:fee_type_id;type:uuid;primaryKey" json:"id"`
	FeeTypeName     string          `gorm:"column:fee_type_name;type:varchar(120);not null" json:"name"`
	FeeTypeAmount   decimal.Decimal `gorm:"column:fee_type_amount;type:decimal(12,2);not null" json:"amount"`
	FeeTypePeriod   FeePeriod       `gorm:"column:fee_type_period;type:varchar(20);not null" json:"period"`
	FeeTypeGroupID  *uuid.UUID      `gorm:"column:fee_type_group_id;type:uuid;index" json:"groupId,omitempty"`
	FeeTypeIsActive bool            `gorm:"column:fee_type_is_active;not null;default:true" json:"isActive"`

	FeeTypeCreatedAt time.Time `gorm:"column:fee_type_created_at;autoCreateTime" json:"createdAt"`
	FeeTypeUpdatedAt time.Time `gorm:"column:fee_type_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (FeeType) TableName() string { return "fee_types" }

func (m *FeeType) BeforeCreate(tx *gorm.DB) error {
	if m.FeeTypeID == uuid.Nil {
		m.FeeTypeID = uuid.New()
	}
	return nil
}
