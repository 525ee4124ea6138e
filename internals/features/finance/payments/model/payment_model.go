package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	feeTypeModel "futbolokulu_backend/internals/features/finance/fee_types/model"
	studentModel "futbolokulu_backend/internals/features/students/students/model"
)

// NotesSeparator: pemisah catatan yang di-append.
const NotesSeparator = " | "

/* ===================== Model ===================== */

type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"id"`

	// FK → students / fee_types (referensi, tidak cascade)
	PaymentStudentID uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index" json:"studentId"`
	PaymentFeeTypeID uuid.UUID `gorm:"column:payment_fee_type_id;type:uuid;not null;index" json:"feeTypeId"`

	// Nominal
	PaymentAmount     decimal.Decimal  `gorm:"column:payment_amount;type:decimal(12,2);not null" json:"amount"`
	PaymentPaidAmount *decimal.Decimal `gorm:"column:payment_paid_amount;type:decimal(12,2)" json:"paidAmount"`

	// Jadwal & pelunasan
	PaymentDueDate  time.Time      `gorm:"column:payment_due_date;not null;index" json:"dueDate"`
	PaymentPaidDate *time.Time     `gorm:"column:payment_paid_date" json:"paidDate"`
	PaymentMethod   *PaymentMethod `gorm:"column:payment_method;type:varchar(20)" json:"paymentMethod"`
	PaymentStatus   PaymentStatus  `gorm:"column:payment_status;type:varchar(20);not null;index" json:"status"`

	// PLAN_<millis>_<prefix studentId>, sama untuk semua cicilan satu plan
	PaymentReferenceNumber *string `gorm:"column:payment_reference_number;type:varchar(64);index" json:"referenceNumber"`
	PaymentNotes           *string `gorm:"column:payment_notes;type:text" json:"notes"`

	PaymentCreatedByID uuid.UUID `gorm:"column:payment_created_by_id;type:uuid;not null" json:"createdById"`
	PaymentCreatedAt   time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"createdAt"`
	PaymentUpdatedAt   time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"updatedAt"`

	Student *studentModel.Student `gorm:"foreignKey:PaymentStudentID;references:StudentID" json:"student,omitempty"`
	FeeType *feeTypeModel.FeeType `gorm:"foreignKey:PaymentFeeTypeID;references:FeeTypeID" json:"feeType,omitempty"`
}

func (Payment) TableName() string { return "payments" }

func (m *Payment) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	if m.PaymentStatus == "" {
		m.PaymentStatus = PaymentStatusPending
	}
	return nil
}

// PaidOrZero: paid_amount NULL dianggap 0.
func (m *Payment) PaidOrZero() decimal.Decimal {
	if m.PaymentPaidAmount == nil {
		return decimal.Zero
	}
	return *m.PaymentPaidAmount
}

// Remaining: amount - paid (tidak pernah negatif).
func (m *Payment) Remaining() decimal.Decimal {
	r := m.PaymentAmount.Sub(m.PaidOrZero())
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// IsOverdue: PENDING/PARTIAL dan due_date < now. Sama dengan predicate di query.
func (m *Payment) IsOverdue(now time.Time) bool {
	switch m.PaymentStatus {
	case PaymentStatusPending, PaymentStatusPartial:
		return m.PaymentDueDate.Before(now)
	case PaymentStatusOverdue:
		return true
	case PaymentStatusPaid, PaymentStatusCancelled:
		return false
	default:
		return false
	}
}

// StatusForPaid menurunkan status dari paid/amount (paid==0 → PENDING).
func StatusForPaid(paid, amount decimal.Decimal) PaymentStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return PaymentStatusPending
	case paid.LessThan(amount):
		return PaymentStatusPartial
	default:
		return PaymentStatusPaid
	}
}

// AppendNotes: catatan lama + " | " + catatan baru (kosong diabaikan).
func AppendNotes(existing *string, add string) *string {
	add = strings.TrimSpace(add)
	if add == "" {
		return existing
	}
	if existing == nil || strings.TrimSpace(*existing) == "" {
		return &add
	}
	s := *existing + NotesSeparator + add
	return &s
}
