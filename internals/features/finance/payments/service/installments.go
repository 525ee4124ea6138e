package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "futbolokulu_backend/internals/features/finance/payments/model"
	"futbolokulu_backend/internals/helpers/dbtime"
)

// PlanID: PLAN_<unix millis>_<8 karakter pertama studentId>.
func PlanID(now time.Time, studentID uuid.UUID) string {
	return fmt.Sprintf("PLAN_%d_%s", now.UnixMilli(), studentID.String()[:8])
}

// InstallmentMarker ditempel ke notes tiap cicilan.
func InstallmentMarker(planID string, i, n int) string {
	return fmt.Sprintf("%s - Vade %d/%d", planID, i, n)
}

type PlanSpec struct {
	StudentID      uuid.UUID
	FeeTypeID      uuid.UUID
	Amount         decimal.Decimal
	Count          int
	StartDate      time.Time
	MonthsInterval int
	Notes          string
	PlanID         string // kosong untuk single payment
	CreatedByID    uuid.UUID
}

// BuildInstallments: due[i] = start + i*interval bulan, semua PENDING.
func BuildInstallments(p PlanSpec) []model.Payment {
	n := p.Count
	if n < 1 {
		n = 1
	}
	interval := p.MonthsInterval
	if interval < 1 {
		interval = 1
	}

	var ref *string
	if n > 1 && p.PlanID != "" {
		id := p.PlanID
		ref = &id
	}

	rows := make([]model.Payment, 0, n)
	for i := 0; i < n; i++ {
		var notes *string
		if p.Notes != "" {
			s := p.Notes
			notes = &s
		}
		if ref != nil {
			notes = model.AppendNotes(notes, InstallmentMarker(*ref, i+1, n))
		}
		rows = append(rows, model.Payment{
			PaymentStudentID:       p.StudentID,
			PaymentFeeTypeID:       p.FeeTypeID,
			PaymentAmount:          p.Amount,
			PaymentDueDate:         dbtime.AddMonths(p.StartDate, i*interval),
			PaymentStatus:          model.PaymentStatusPending,
			PaymentReferenceNumber: ref,
			PaymentNotes:           notes,
			PaymentCreatedByID:     p.CreatedByID,
		})
	}
	return rows
}
