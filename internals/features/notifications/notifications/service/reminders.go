package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	paymentDTO "futbolokulu_backend/internals/features/finance/payments/dto"
	model "futbolokulu_backend/internals/features/notifications/notifications/model"
	studentModel "futbolokulu_backend/internals/features/students/students/model"
	helper "futbolokulu_backend/internals/helpers"
)

// OverdueSource: diimplementasi payments.Ledger.
type OverdueSource interface {
	OverdueByStudent(ctx context.Context) ([]paymentDTO.OverdueStudent, error)
}

type Reminders struct {
	DB         *gorm.DB
	Log        *zap.Logger
	Overdue    OverdueSource
	Dispatcher *Dispatcher
}

func NewReminders(db *gorm.DB, log *zap.Logger, src OverdueSource, d *Dispatcher) *Reminders {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reminders{DB: db, Log: log.Named("reminders"), Overdue: src, Dispatcher: d}
}

type ReminderResult struct {
	Count   int `json:"count"`
	Skipped int `json:"skipped"` // murid tanpa parent primary / tidak aktif
}

// SendPaymentReminders: satu pesan per parent primary dari murid aktif yang punya tunggakan.
func (r *Reminders) SendPaymentReminders(ctx context.Context) (*ReminderResult, error) {
	overdue, err := r.Overdue.OverdueByStudent(ctx)
	if err != nil {
		return nil, err
	}
	res := &ReminderResult{}
	if len(overdue) == 0 {
		return res, nil
	}

	ids := make([]uuid.UUID, 0, len(overdue))
	for _, o := range overdue {
		ids = append(ids, o.StudentID)
	}
	var students []studentModel.Student
	if err := r.DB.WithContext(ctx).
		Preload("Parents", "parent_is_primary = ?", true).
		Where("student_id IN ? AND student_is_active = ?", ids, true).
		Find(&students).Error; err != nil {
		return nil, helper.ErrPersistence("load students for reminders", err)
	}
	byID := make(map[uuid.UUID]*studentModel.Student, len(students))
	for i := range students {
		byID[students[i].StudentID] = &students[i]
	}

	for _, o := range overdue {
		s, ok := byID[o.StudentID]
		if !ok {
			res.Skipped++
			continue
		}
		p := s.PrimaryParent()
		if p == nil {
			res.Skipped++
			continue
		}
		if err := r.Dispatcher.Dispatch(ctx, reminderMessage(s, p, o)); err != nil {
			if helper.StatusOf(err) >= 500 {
				return nil, err
			}
			r.Log.Warn("⚠️ reminder skipped", zap.String("student_id", s.StudentID.String()), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Count++
	}

	r.Log.Info("🔔 payment reminders queued", zap.Int("count", res.Count), zap.Int("skipped", res.Skipped))
	return res, nil
}

func reminderMessage(s *studentModel.Student, p *studentModel.Parent, o paymentDTO.OverdueStudent) model.Message {
	msg := model.Message{
		Channel:       model.ChannelSMS,
		Recipient:     p.ParentPhone,
		RecipientName: p.FullName(),
		Subject:       "Ödeme hatırlatması",
		Body: fmt.Sprintf("Dear %s, %s has %d overdue payment(s) with %s remaining. Please contact the school office.",
			p.FullName(), s.FullName(), o.Count, o.Remaining.StringFixed(2)),
		Meta: map[string]any{
			"kind":      "payment_reminder",
			"studentId": s.StudentID.String(),
			"count":     o.Count,
			"remaining": o.Remaining.StringFixed(2),
		},
	}
	if p.ParentEmail != nil && *p.ParentEmail != "" {
		msg.Channel = model.ChannelEmail
		msg.Recipient = *p.ParentEmail
	}
	return msg
}
