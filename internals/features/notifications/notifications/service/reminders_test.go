package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futbolokulu_backend/internals/constants"
	"futbolokulu_backend/internals/databases/dbtest"
	feeTypeModel "futbolokulu_backend/internals/features/finance/fee_types/model"
	paymentModel "futbolokulu_backend/internals/features/finance/payments/model"
	paymentService "futbolokulu_backend/internals/features/finance/payments/service"
	model "futbolokulu_backend/internals/features/notifications/notifications/model"
	"futbolokulu_backend/internals/features/notifications/notifications/service"
	studentModel "futbolokulu_backend/internals/features/students/students/model"
)

func TestSendPaymentReminders(t *testing.T) {
	db := dbtest.Open(t)
	admin := dbtest.User(t, db, "Admin", constants.RoleAdmin)
	fee := dbtest.FeeType(t, db, "Aidat", 500, feeTypeModel.FeePeriodMonthly)

	late := dbtest.Student(t, db, "Emre", "Yilmaz", nil, admin.ID)
	require.NoError(t, db.Model(&studentModel.Parent{}).
		Where("parent_student_id = ?", late.StudentID).
		Update("parent_email", "veli@example.com").Error)
	onTime := dbtest.Student(t, db, "Can", "Demir", nil, admin.ID)
	gone := dbtest.Student(t, db, "Mert", "Oz", nil, admin.ID)
	dbtest.Deactivate(t, db, gone)

	pay := func(s *studentModel.Student, due time.Time, paid int64) {
		p := &paymentModel.Payment{
			PaymentStudentID:   s.StudentID,
			PaymentFeeTypeID:   fee.FeeTypeID,
			PaymentAmount:      decimal.NewFromInt(500),
			PaymentDueDate:     due,
			PaymentStatus:      paymentModel.PaymentStatusPending,
			PaymentCreatedByID: admin.ID,
		}
		if paid > 0 {
			v := decimal.NewFromInt(paid)
			p.PaymentPaidAmount = &v
			p.PaymentStatus = paymentModel.PaymentStatusPartial
		}
		require.NoError(t, db.Create(p).Error)
	}
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	pay(late, now.AddDate(0, -2, 0), 0)
	pay(late, now.AddDate(0, -1, 0), 200)
	pay(onTime, now.AddDate(0, 1, 0), 0)
	pay(gone, now.AddDate(0, -1, 0), 0)

	ledger := paymentService.NewLedger(db, nil)
	ledger.Now = func() time.Time { return now }
	email := &recordingSender{}
	sms := &recordingSender{}
	d := service.NewDispatcher(db, nil, map[model.Channel]service.Sender{
		model.ChannelEmail: email,
		model.ChannelSMS:   sms,
	})
	r := service.NewReminders(db, nil, ledger, d)

	res, err := r.SendPaymentReminders(context.Background())
	require.NoError(t, err)
	d.Wait()

	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 1, res.Skipped, "inactive student is skipped")
	require.Len(t, email.sent, 1)
	assert.Empty(t, sms.sent)
	msg := email.sent[0]
	assert.Equal(t, "veli@example.com", msg.Recipient)
	assert.Contains(t, msg.Body, "2 overdue payment(s)")
	assert.Contains(t, msg.Body, "800.00")
}
