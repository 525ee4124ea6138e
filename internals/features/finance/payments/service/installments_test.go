package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "futbolokulu_backend/internals/features/finance/payments/model"
	"futbolokulu_backend/internals/helpers/dbtime"
)

func TestPlanID_Format(t *testing.T) {
	sid := uuid.MustParse("3f2504e0-4f89-11d3-9a0c-0305e82c3301")
	now := time.UnixMilli(1735689600123)

	id := PlanID(now, sid)
	assert.Equal(t, "PLAN_1735689600123_3f2504e0", id)
	assert.Regexp(t, regexp.MustCompile(`^PLAN_\d+_[0-9a-f]{8}$`), id)
}

func TestBuildInstallments_DueDatesAndMarkers(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		interval int
		n        int
		want     []string
	}{
		{"monthly", 1, 3, []string{"2025-01-01", "2025-02-01", "2025-03-01"}},
		{"quarterly", 3, 4, []string{"2025-01-01", "2025-04-01", "2025-07-01", "2025-10-01"}},
		{"yearly", 12, 2, []string{"2025-01-01", "2026-01-01"}},
		{"invalid interval falls back to monthly", 0, 2, []string{"2025-01-01", "2025-02-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildInstallments(PlanSpec{
				StudentID:      uuid.New(),
				FeeTypeID:      uuid.New(),
				Amount:         decimal.NewFromInt(500),
				Count:          tt.n,
				StartDate:      start,
				MonthsInterval: tt.interval,
				PlanID:         "PLAN_1_abcdef12",
			})
			require.Len(t, rows, tt.n)
			for i, r := range rows {
				assert.Equal(t, tt.want[i], dbtime.DateString(r.PaymentDueDate))
				assert.Equal(t, model.PaymentStatusPending, r.PaymentStatus)
				require.NotNil(t, r.PaymentReferenceNumber)
				assert.Equal(t, "PLAN_1_abcdef12", *r.PaymentReferenceNumber)
				require.NotNil(t, r.PaymentNotes)
				assert.Equal(t, InstallmentMarker("PLAN_1_abcdef12", i+1, tt.n), *r.PaymentNotes)
			}
		})
	}
}

func TestBuildInstallments_UserNotesKeptBeforeMarker(t *testing.T) {
	rows := BuildInstallments(PlanSpec{
		Amount:    decimal.NewFromInt(100),
		Count:     2,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Notes:     "kardes indirimi",
		PlanID:    "PLAN_9_00000000",
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "kardes indirimi | PLAN_9_00000000 - Vade 1/2", *rows[0].PaymentNotes)
	assert.Equal(t, "kardes indirimi | PLAN_9_00000000 - Vade 2/2", *rows[1].PaymentNotes)
}

func TestBuildInstallments_SinglePaymentHasNoReference(t *testing.T) {
	rows := BuildInstallments(PlanSpec{
		Amount:    decimal.NewFromInt(100),
		Count:     1,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PlanID:    "PLAN_ignored",
	})
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].PaymentReferenceNumber)
	assert.Nil(t, rows[0].PaymentNotes)
}
