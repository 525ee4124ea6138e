// file: internals/features/finance/payments/service/ledger.go
package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "futbolokulu_backend/internals/databases"
	feeTypeModel "futbolokulu_backend/internals/features/finance/fee_types/model"
	"futbolokulu_backend/internals/features/finance/payments/dto"
	model "futbolokulu_backend/internals/features/finance/payments/model"
	studentModel "futbolokulu_backend/internals/features/students/students/model"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
	"futbolokulu_backend/internals/helpers/dbtime"
)

/* =========================================================
   Ledger: satu-satunya jalur mutasi tabel payments
========================================================= */

type Ledger struct {
	DB  *gorm.DB
	Log *zap.Logger
	Now func() time.Time
}

func NewLedger(db *gorm.DB, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{DB: db, Log: log.Named("ledger"), Now: dbtime.NowUTC}
}

func (s *Ledger) now() time.Time {
	if s.Now == nil {
		return dbtime.NowUTC()
	}
	return s.Now().UTC()
}

// Clock: waktu "sekarang" yang sama dengan yang dipakai predicate overdue.
func (s *Ledger) Clock() time.Time { return s.now() }

type CreateResult struct {
	Payments []model.Payment
	Count    int
	PlanID   *string
}

type BulkResult struct {
	Payments   []model.Payment
	Count      int
	SkippedIDs []uuid.UUID
}

/* =========================================================
   CREATE: single payment / installment plan
========================================================= */

func (s *Ledger) CreatePayments(ctx context.Context, actor helperAuth.Identity, in dto.CreatePaymentInput) (*CreateResult, error) {
	if in.InstallmentCount < 1 || in.InstallmentCount > dto.MaxInstallments {
		return nil, helper.ErrField("installmentCount", "installmentCount must be between 1 and 60")
	}
	if !in.Amount.IsPositive() {
		return nil, helper.ErrField("amount", "amount must be greater than 0")
	}

	now := s.now()
	res := &CreateResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := studentExists(tx, in.StudentID); err != nil {
			return err
		}
		var fee feeTypeModel.FeeType
		if err := tx.Where("fee_type_id = ?", in.FeeTypeID).Take(&fee).Error; err != nil {
			if helper.IsRecordNotFound(err) {
				return helper.ErrNotFound("fee type", in.FeeTypeID.String())
			}
			return helper.ErrPersistence("load fee type", err)
		}

		spec := PlanSpec{
			StudentID:      in.StudentID,
			FeeTypeID:      in.FeeTypeID,
			Amount:         in.Amount,
			Count:          in.InstallmentCount,
			StartDate:      in.StartDate,
			MonthsInterval: fee.FeeTypePeriod.MonthsInterval(),
			Notes:          in.Notes,
			CreatedByID:    actor.UserID,
		}
		action := model.EventCreated
		if in.InstallmentCount > 1 {
			spec.PlanID = PlanID(now, in.StudentID)
			res.PlanID = &spec.PlanID
			action = model.EventPlanInstallment
		}

		rows := BuildInstallments(spec)
		events := make([]model.PaymentEvent, 0, len(rows))
		// satu per satu: gagal di baris mana pun → rollback semua
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return helper.ErrPersistence("create payment", err)
			}
			events = append(events, newEvent(rows[i].PaymentID, actor, action, map[string]any{
				"amount":      rows[i].PaymentAmount.String(),
				"dueDate":     dbtime.DateString(rows[i].PaymentDueDate),
				"installment": i + 1,
				"of":          len(rows),
				"planId":      spec.PlanID,
			}))
		}
		if err := insertEvents(tx, events); err != nil {
			return err
		}
		res.Payments = rows
		res.Count = len(rows)
		return nil
	})
	if err != nil {
		return nil, helper.ErrPersistence("create payments tx", err)
	}

	s.Log.Info("💰 payments created",
		zap.String("student_id", in.StudentID.String()),
		zap.Int("count", res.Count),
		zap.String("actor", actor.Name),
	)
	return res, nil
}

/* =========================================================
   RECORD PAYMENT: pembayaran parsial / pelunasan
========================================================= */

func (s *Ledger) RecordPayment(ctx context.Context, actor helperAuth.Identity, id uuid.UUID, in dto.RecordPaymentInput) (*model.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, helper.ErrField("amount", "amount must be greater than 0")
	}
	now := s.now()

	var out model.Payment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPayment(tx, id)
		if err != nil {
			return err
		}
		if p.PaymentStatus.IsTerminal() {
			return helper.ErrValidation("payment is "+string(p.PaymentStatus)+" and cannot be changed", nil)
		}
		if in.Amount.GreaterThan(p.Remaining()) {
			return helper.ErrField("amount", "amount exceeds remaining balance "+p.Remaining().StringFixed(2))
		}

		paid := p.PaidOrZero().Add(in.Amount)
		paidDate := now
		if in.PaidDate != nil {
			paidDate = in.PaidDate.UTC()
		}
		updates := map[string]any{
			"payment_paid_amount": paid,
			"payment_paid_date":   paidDate,
			"payment_status":      model.StatusForPaid(paid, p.PaymentAmount),
			"payment_notes":       model.AppendNotes(p.PaymentNotes, in.Notes),
		}
		if in.PaymentMethod != nil {
			updates["payment_method"] = *in.PaymentMethod
		}
		if err := tx.Model(&model.Payment{}).Where("payment_id = ?", id).Updates(updates).Error; err != nil {
			return helper.ErrPersistence("record payment", err)
		}
		if err := insertEvents(tx, []model.PaymentEvent{newEvent(id, actor, model.EventPaymentRecorded, map[string]any{
			"amount":     in.Amount.String(),
			"paidAmount": paid.String(),
			"paidDate":   dbtime.DateString(paidDate),
		})}); err != nil {
			return err
		}
		return tx.Where("payment_id = ?", id).Take(&out).Error
	})
	if err != nil {
		return nil, helper.ErrPersistence("record payment tx", err)
	}
	return &out, nil
}

/* =========================================================
   UPDATE: edit payment yang belum final
========================================================= */

func (s *Ledger) Update(ctx context.Context, actor helperAuth.Identity, id uuid.UUID, in dto.UpdatePaymentInput) (*model.Payment, error) {
	var out model.Payment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPayment(tx, id)
		if err != nil {
			return err
		}
		if p.PaymentStatus.IsTerminal() {
			return helper.ErrValidation("payment is "+string(p.PaymentStatus)+" and cannot be changed", nil)
		}

		amount := p.PaymentAmount
		updates := map[string]any{}
		detail := map[string]any{}
		if in.Amount != nil {
			if in.Amount.LessThan(p.PaidOrZero()) {
				return helper.ErrField("amount", "amount cannot be less than the paid amount")
			}
			amount = *in.Amount
			updates["payment_amount"] = amount
			detail["amount"] = map[string]string{"from": p.PaymentAmount.String(), "to": amount.String()}
		}
		if in.DueDate != nil {
			updates["payment_due_date"] = in.DueDate.UTC()
			detail["dueDate"] = map[string]string{"from": dbtime.DateString(p.PaymentDueDate), "to": dbtime.DateString(*in.DueDate)}
		}
		if in.PaymentMethod != nil {
			updates["payment_method"] = *in.PaymentMethod
			detail["paymentMethod"] = string(*in.PaymentMethod)
		}
		if in.Notes != nil {
			if *in.Notes == "" {
				updates["payment_notes"] = gorm.Expr("NULL")
			} else {
				updates["payment_notes"] = *in.Notes
			}
			detail["notes"] = true
		}
		// status selalu diturunkan ulang (OVERDUE legacy ikut dinormalisasi)
		updates["payment_status"] = model.StatusForPaid(p.PaidOrZero(), amount)

		if err := tx.Model(&model.Payment{}).Where("payment_id = ?", id).Updates(updates).Error; err != nil {
			return helper.ErrPersistence("update payment", err)
		}
		if err := insertEvents(tx, []model.PaymentEvent{newEvent(id, actor, model.EventUpdated, detail)}); err != nil {
			return err
		}
		return tx.Where("payment_id = ?", id).Take(&out).Error
	})
	if err != nil {
		return nil, helper.ErrPersistence("update payment tx", err)
	}
	return &out, nil
}

/* =========================================================
   Internals
========================================================= */

func studentExists(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&studentModel.Student{}).Where("student_id = ?", id).Count(&n).Error; err != nil {
		return helper.ErrPersistence("check student", err)
	}
	if n == 0 {
		return helper.ErrNotFound("student", id.String())
	}
	return nil
}

// forUpdate: SELECT ... FOR UPDATE hanya di Postgres (sqlite tidak mengenal row lock).
func forUpdate(tx *gorm.DB) *gorm.DB {
	if database.IsPostgres(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func lockPayment(tx *gorm.DB, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	if err := forUpdate(tx).Where("payment_id = ?", id).Take(&p).Error; err != nil {
		if helper.IsRecordNotFound(err) {
			return nil, helper.ErrNotFound("payment", id.String())
		}
		return nil, helper.ErrPersistence("load payment", err)
	}
	return &p, nil
}

func newEvent(paymentID uuid.UUID, actor helperAuth.Identity, action model.PaymentEventAction, detail map[string]any) model.PaymentEvent {
	ev := model.PaymentEvent{
		PaymentEventPaymentID: paymentID,
		PaymentEventActorID:   actor.UserID,
		PaymentEventActorName: actor.Name,
		PaymentEventAction:    action,
	}
	if len(detail) > 0 {
		if b, err := sonic.Marshal(detail); err == nil {
			ev.PaymentEventDetail = datatypes.JSON(b)
		}
	}
	return ev
}

func insertEvents(tx *gorm.DB, events []model.PaymentEvent) error {
	if len(events) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&events, 200).Error; err != nil {
		return helper.ErrPersistence("insert payment events", err)
	}
	return nil
}
