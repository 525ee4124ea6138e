package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "futbolokulu_backend/internals/features/finance/payments/model"
	helper "futbolokulu_backend/internals/helpers"
	"futbolokulu_backend/internals/helpers/dbtime"
)

const MaxInstallments = 60

/* =========================================================
   REQUEST: create (single / installment plan)
========================================================= */

type CreatePaymentRequest struct {
	StudentID        string           `json:"studentId" validate:"required,uuid"`
	FeeTypeID        string           `json:"feeTypeId" validate:"required,uuid"`
	Amount           *decimal.Decimal `json:"amount" validate:"required"`
	InstallmentCount *int             `json:"installmentCount" validate:"omitempty,min=1,max=60"`
	StartDate        string           `json:"startDate" validate:"required"`
	Notes            *string          `json:"notes" validate:"omitempty,max=2000"`
}

// CreatePaymentInput: hasil parse + validasi, siap dipakai ledger.
type CreatePaymentInput struct {
	StudentID        uuid.UUID
	FeeTypeID        uuid.UUID
	Amount           decimal.Decimal
	InstallmentCount int
	StartDate        time.Time
	Notes            string
}

func (r CreatePaymentRequest) Parse() (CreatePaymentInput, error) {
	if err := helper.ValidateStruct(&r); err != nil {
		return CreatePaymentInput{}, err
	}
	start, err := dbtime.ParseDate(r.StartDate)
	if err != nil {
		return CreatePaymentInput{}, helper.ErrField("startDate", err.Error())
	}
	if !r.Amount.IsPositive() {
		return CreatePaymentInput{}, helper.ErrField("amount", "amount must be greater than 0")
	}
	n := 1
	if r.InstallmentCount != nil {
		n = *r.InstallmentCount
	}
	return CreatePaymentInput{
		StudentID:        uuid.MustParse(r.StudentID),
		FeeTypeID:        uuid.MustParse(r.FeeTypeID),
		Amount:           r.Amount.Round(2),
		InstallmentCount: n,
		StartDate:        start,
		Notes:            trimPtr(r.Notes),
	}, nil
}

/* =========================================================
   REQUEST: bulk (action: bulk_charge | bulk_collect)
========================================================= */

const (
	ActionBulkCharge  = "bulk_charge"
	ActionBulkCollect = "bulk_collect"
)

type BulkPaymentRequest struct {
	Action string `json:"action"`

	// bulk_charge
	FeeTypeID  string           `json:"feeTypeId"`
	StudentIDs []string         `json:"studentIds"`
	GroupID    string           `json:"groupId"`
	Amount     *decimal.Decimal `json:"amount"`
	DueDate    string           `json:"dueDate"`

	// bulk_collect
	PaymentIDs     []string `json:"paymentIds"`
	CollectionDate *string  `json:"collectionDate"`
	PaymentMethod  *string  `json:"paymentMethod"`
	Notes          *string  `json:"notes"`
}

type bulkChargeRequest struct {
	FeeTypeID  string   `json:"feeTypeId" validate:"required,uuid"`
	StudentIDs []string `json:"studentIds" validate:"omitempty,max=1000,dive,uuid"`
	GroupID    string   `json:"groupId" validate:"omitempty,uuid"`
	DueDate    string   `json:"dueDate" validate:"required"`
}

type bulkCollectRequest struct {
	PaymentIDs []string `json:"paymentIds" validate:"required,min=1,max=1000,dive,uuid"`
	Notes      string   `json:"notes" validate:"max=2000"`
}

type BulkChargeInput struct {
	FeeTypeID  uuid.UUID
	StudentIDs []uuid.UUID
	GroupID    *uuid.UUID
	Amount     *decimal.Decimal
	DueDate    time.Time
	Notes      string
}

type BulkCollectInput struct {
	PaymentIDs     []uuid.UUID
	CollectionDate *time.Time
	PaymentMethod  *model.PaymentMethod
	Notes          string
}

func (r BulkPaymentRequest) NormalizedAction() string {
	return strings.ToLower(strings.TrimSpace(r.Action))
}

func (r BulkPaymentRequest) ParseCharge() (BulkChargeInput, error) {
	v := bulkChargeRequest{
		FeeTypeID:  strings.TrimSpace(r.FeeTypeID),
		StudentIDs: r.StudentIDs,
		GroupID:    strings.TrimSpace(r.GroupID),
		DueDate:    r.DueDate,
	}
	if err := helper.ValidateStruct(&v); err != nil {
		return BulkChargeInput{}, err
	}
	if len(v.StudentIDs) == 0 && v.GroupID == "" {
		return BulkChargeInput{}, helper.ErrField("studentIds", "studentIds or groupId is required")
	}
	due, err := dbtime.ParseDate(v.DueDate)
	if err != nil {
		return BulkChargeInput{}, helper.ErrField("dueDate", err.Error())
	}

	in := BulkChargeInput{
		FeeTypeID:  uuid.MustParse(v.FeeTypeID),
		StudentIDs: parseUUIDs(v.StudentIDs),
		DueDate:    due,
		Notes:      trimPtr(r.Notes),
	}
	if v.GroupID != "" && len(in.StudentIDs) == 0 {
		gid := uuid.MustParse(v.GroupID)
		in.GroupID = &gid
	}
	if r.Amount != nil {
		if !r.Amount.IsPositive() {
			return BulkChargeInput{}, helper.ErrField("amount", "amount must be greater than 0")
		}
		a := r.Amount.Round(2)
		in.Amount = &a
	}
	return in, nil
}

func (r BulkPaymentRequest) ParseCollect() (BulkCollectInput, error) {
	v := bulkCollectRequest{PaymentIDs: r.PaymentIDs, Notes: trimPtr(r.Notes)}
	if err := helper.ValidateStruct(&v); err != nil {
		return BulkCollectInput{}, err
	}
	in := BulkCollectInput{
		PaymentIDs: parseUUIDs(v.PaymentIDs),
		Notes:      v.Notes,
	}
	date, err := dbtime.ParseDatePtr(r.CollectionDate)
	if err != nil {
		return BulkCollectInput{}, helper.ErrField("collectionDate", err.Error())
	}
	in.CollectionDate = date
	if r.PaymentMethod != nil && strings.TrimSpace(*r.PaymentMethod) != "" {
		m, err := model.ParsePaymentMethod(*r.PaymentMethod)
		if err != nil {
			return BulkCollectInput{}, helper.ErrField("paymentMethod", err.Error())
		}
		in.PaymentMethod = &m
	}
	return in, nil
}

/* =========================================================
   REQUEST: record payment / update
========================================================= */

type RecordPaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	PaidDate      *string          `json:"paidDate"`
	PaymentMethod *string          `json:"paymentMethod"`
	Notes         *string          `json:"notes" validate:"omitempty,max=2000"`
}

type RecordPaymentInput struct {
	Amount        decimal.Decimal
	PaidDate      *time.Time
	PaymentMethod *model.PaymentMethod
	Notes         string
}

func (r RecordPaymentRequest) Parse() (RecordPaymentInput, error) {
	if err := helper.ValidateStruct(&r); err != nil {
		return RecordPaymentInput{}, err
	}
	if !r.Amount.IsPositive() {
		return RecordPaymentInput{}, helper.ErrField("amount", "amount must be greater than 0")
	}
	in := RecordPaymentInput{Amount: r.Amount.Round(2), Notes: trimPtr(r.Notes)}
	date, err := dbtime.ParseDatePtr(r.PaidDate)
	if err != nil {
		return RecordPaymentInput{}, helper.ErrField("paidDate", err.Error())
	}
	in.PaidDate = date
	m, err := parseMethodPtr(r.PaymentMethod)
	if err != nil {
		return RecordPaymentInput{}, err
	}
	in.PaymentMethod = m
	return in, nil
}

type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	DueDate       *string          `json:"dueDate"`
	PaymentMethod *string          `json:"paymentMethod"`
	Notes         *string          `json:"notes" validate:"omitempty,max=2000"`
}

type UpdatePaymentInput struct {
	Amount        *decimal.Decimal
	DueDate       *time.Time
	PaymentMethod *model.PaymentMethod
	Notes         *string
}

func (r UpdatePaymentRequest) Parse() (UpdatePaymentInput, error) {
	if err := helper.ValidateStruct(&r); err != nil {
		return UpdatePaymentInput{}, err
	}
	var in UpdatePaymentInput
	if r.Amount != nil {
		if !r.Amount.IsPositive() {
			return in, helper.ErrField("amount", "amount must be greater than 0")
		}
		a := r.Amount.Round(2)
		in.Amount = &a
	}
	due, err := dbtime.ParseDatePtr(r.DueDate)
	if err != nil {
		return in, helper.ErrField("dueDate", err.Error())
	}
	in.DueDate = due
	m, err := parseMethodPtr(r.PaymentMethod)
	if err != nil {
		return in, err
	}
	in.PaymentMethod = m
	if r.Notes != nil {
		n := strings.TrimSpace(*r.Notes)
		in.Notes = &n
	}
	if in.Amount == nil && in.DueDate == nil && in.PaymentMethod == nil && in.Notes == nil {
		return in, helper.ErrValidation("nothing to update", nil)
	}
	return in, nil
}

/* =========================================================
   Small helpers
========================================================= */

func trimPtr(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// parseUUIDs: input sudah lolos validasi uuid; duplikat dibuang, urutan dijaga.
func parseUUIDs(in []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(in))
	seen := make(map[uuid.UUID]struct{}, len(in))
	for _, s := range in {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func parseMethodPtr(s *string) (*model.PaymentMethod, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	m, err := model.ParsePaymentMethod(*s)
	if err != nil {
		return nil, helper.ErrField("paymentMethod", err.Error())
	}
	return &m, nil
}
