package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "futbolokulu_backend/internals/features/finance/fee_types/model"
	helper "futbolokulu_backend/internals/helpers"
)

type CreateFeeTypeRequest struct {
	Name    string           `json:"name" validate:"required,notblank,max=120"`
	Amount  *decimal.Decimal `json:"amount" validate:"required"`
	Period  string           `json:"period" validate:"required,oneof=MONTHLY QUARTERLY YEARLY ONE_TIME"`
	GroupID *string          `json:"groupId" validate:"omitempty,uuid"`
}

// Normalize: period di-uppercase sebelum validasi oneof.
func (r *CreateFeeTypeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Period = strings.ToUpper(strings.TrimSpace(r.Period))
	if r.GroupID != nil && strings.TrimSpace(*r.GroupID) == "" {
		r.GroupID = nil
	}
}

func (r CreateFeeTypeRequest) ToModel() (model.FeeType, error) {
	if err := helper.ValidateStruct(&r); err != nil {
		return model.FeeType{}, err
	}
	if !r.Amount.IsPositive() {
		return model.FeeType{}, helper.ErrField("amount", "amount must be greater than 0")
	}
	m := model.FeeType{
		FeeTypeName:     r.Name,
		FeeTypeAmount:   r.Amount.Round(2),
		FeeTypePeriod:   model.FeePeriod(r.Period),
		FeeTypeIsActive: true,
	}
	if r.GroupID != nil {
		id := uuid.MustParse(strings.TrimSpace(*r.GroupID))
		m.FeeTypeGroupID = &id
	}
	return m, nil
}

type FeeTypeResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	GroupID   *uuid.UUID      `json:"groupId"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

func ToFeeTypeResponse(m *model.FeeType) FeeTypeResponse {
	return FeeTypeResponse{
		ID:        m.FeeTypeID,
		Name:      m.FeeTypeName,
		Amount:    m.FeeTypeAmount,
		Period:    string(m.FeeTypePeriod),
		GroupID:   m.FeeTypeGroupID,
		IsActive:  m.FeeTypeIsActive,
		CreatedAt: m.FeeTypeCreatedAt,
	}
}
