package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	feeTypeModel "futbolokulu_backend/internals/features/finance/fee_types/model"
	"futbolokulu_backend/internals/features/finance/payments/dto"
	model "futbolokulu_backend/internals/features/finance/payments/model"
	studentModel "futbolokulu_backend/internals/features/students/students/model"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
	"futbolokulu_backend/internals/helpers/dbtime"
)

const (
	chargeBatchSize = 200
	cancelChunkSize = 1000
)

/* =========================================================
   BULK CHARGE: satu tagihan PENDING per murid
========================================================= */

func (s *Ledger) BulkCharge(ctx context.Context, actor helperAuth.Identity, in dto.BulkChargeInput) (*BulkResult, error) {
	res := &BulkResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		targets, err := resolveChargeTargets(tx, in)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return helper.ErrValidation("no students found for the given target", nil)
		}

		var fee feeTypeModel.FeeType
		if err := tx.Where("fee_type_id = ?", in.FeeTypeID).Take(&fee).Error; err != nil {
			if helper.IsRecordNotFound(err) {
				return helper.ErrNotFound("fee type", in.FeeTypeID.String())
			}
			return helper.ErrPersistence("load fee type", err)
		}

		amount := fee.FeeTypeAmount
		if in.Amount != nil {
			amount = *in.Amount
		}
		var notes *string
		if in.Notes != "" {
			n := in.Notes
			notes = &n
		}

		rows := make([]model.Payment, 0, len(targets))
		for _, sid := range targets {
			rows = append(rows, model.Payment{
				PaymentStudentID:   sid,
				PaymentFeeTypeID:   fee.FeeTypeID,
				PaymentAmount:      amount,
				PaymentDueDate:     in.DueDate,
				PaymentStatus:      model.PaymentStatusPending,
				PaymentNotes:       notes,
				PaymentCreatedByID: actor.UserID,
			})
		}
		if err := tx.CreateInBatches(&rows, chargeBatchSize).Error; err != nil {
			return helper.ErrPersistence("bulk charge", err)
		}

		events := make([]model.PaymentEvent, 0, len(rows))
		for i := range rows {
			events = append(events, newEvent(rows[i].PaymentID, actor, model.EventBulkCharged, map[string]any{
				"amount":  amount.String(),
				"dueDate": dbtime.DateString(in.DueDate),
				"feeType": fee.FeeTypeName,
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
		return nil, helper.ErrPersistence("bulk charge tx", err)
	}

	s.Log.Info("🧾 bulk charge",
		zap.String("fee_type_id", in.FeeTypeID.String()),
		zap.Int("count", res.Count),
		zap.String("actor", actor.Name),
	)
	return res, nil
}

// resolveChargeTargets: studentIds eksplisit harus ada semua; groupId → murid aktif.
func resolveChargeTargets(tx *gorm.DB, in dto.BulkChargeInput) ([]uuid.UUID, error) {
	if len(in.StudentIDs) > 0 {
		var found []uuid.UUID
		if err := tx.Model(&studentModel.Student{}).
			Where("student_id IN ?", in.StudentIDs).
			Pluck("student_id", &found).Error; err != nil {
			return nil, helper.ErrPersistence("resolve students", err)
		}
		have := make(map[uuid.UUID]struct{}, len(found))
		for _, id := range found {
			have[id] = struct{}{}
		}
		var missing []string
		for _, id := range in.StudentIDs {
			if _, ok := have[id]; !ok {
				missing = append(missing, id.String())
			}
		}
		if len(missing) > 0 {
			return nil, helper.ErrNotFound("student", missing...)
		}
		return in.StudentIDs, nil
	}

	if in.GroupID == nil {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := tx.Model(&studentModel.Student{}).
		Where("student_group_id = ? AND student_is_active = ?", *in.GroupID, true).
		Order("student_last_name ASC, student_first_name ASC").
		Pluck("student_id", &ids).Error; err != nil {
		return nil, helper.ErrPersistence("resolve group students", err)
	}
	return ids, nil
}

/* =========================================================
   BULK COLLECT: lunasi banyak payment sekaligus
   id yang hilang / sudah final dilewati; sisanya atomik.
========================================================= */

func (s *Ledger) BulkCollect(ctx context.Context, actor helperAuth.Identity, in dto.BulkCollectInput) (*BulkResult, error) {
	if len(in.PaymentIDs) == 0 {
		return nil, helper.ErrField("paymentIds", "paymentIds is required")
	}
	paidDate := s.now()
	if in.CollectionDate != nil {
		paidDate = in.CollectionDate.UTC()
	}

	res := &BulkResult{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.Payment
		if err := forUpdate(tx).Where("payment_id IN ?", in.PaymentIDs).Find(&rows).Error; err != nil {
			return helper.ErrPersistence("load payments", err)
		}
		byID := make(map[uuid.UUID]*model.Payment, len(rows))
		for i := range rows {
			byID[rows[i].PaymentID] = &rows[i]
		}

		events := make([]model.PaymentEvent, 0, len(rows))
		for _, id := range in.PaymentIDs {
			p, ok := byID[id]
			if !ok || p.PaymentStatus.IsTerminal() {
				res.SkippedIDs = append(res.SkippedIDs, id)
				continue
			}

			amount := p.PaymentAmount
			updates := map[string]any{
				"payment_paid_amount": amount,
				"payment_paid_date":   paidDate,
				"payment_status":      model.PaymentStatusPaid,
				"payment_notes":       model.AppendNotes(p.PaymentNotes, in.Notes),
			}
			if in.PaymentMethod != nil {
				updates["payment_method"] = *in.PaymentMethod
			}
			if err := tx.Model(&model.Payment{}).Where("payment_id = ?", id).Updates(updates).Error; err != nil {
				return helper.ErrPersistence("collect payment", err)
			}
			events = append(events, newEvent(id, actor, model.EventBulkCollected, map[string]any{
				"amount":   amount.String(),
				"paidDate": dbtime.DateString(paidDate),
			}))

			var fresh model.Payment
			if err := tx.Where("payment_id = ?", id).Take(&fresh).Error; err != nil {
				return helper.ErrPersistence("reload payment", err)
			}
			res.Payments = append(res.Payments, fresh)
		}
		if err := insertEvents(tx, events); err != nil {
			return err
		}
		res.Count = len(res.Payments)
		return nil
	})
	if err != nil {
		return nil, helper.ErrPersistence("bulk collect tx", err)
	}

	if len(res.SkippedIDs) > 0 {
		s.Log.Warn("⚠️ bulk collect skipped ids",
			zap.Int("requested", len(in.PaymentIDs)),
			zap.Int("skipped", len(res.SkippedIDs)),
		)
	}
	s.Log.Info("✅ bulk collect", zap.Int("count", res.Count), zap.String("actor", actor.Name))
	return res, nil
}

/* =========================================================
   BULK CANCEL: set-based UPDATE, PAID & CANCELLED tidak disentuh
========================================================= */

var cancelExcluded = []string{string(model.PaymentStatusCancelled), string(model.PaymentStatusPaid)}

func CancelStamp(actorName string) string {
	return "CANCELLED (bulk) by " + actorName
}

func (s *Ledger) BulkCancel(ctx context.Context, actor helperAuth.Identity, f dto.PaymentFilter) (int64, error) {
	now := s.now()
	stamp := CancelStamp(actor.Name)

	var affected int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := forUpdate(tx.Model(&model.Payment{})).
			Scopes(filterScope(f, now)).
			Where("payment_status NOT IN ?", cancelExcluded).
			Pluck("payment_id", &ids).Error; err != nil {
			return helper.ErrPersistence("select payments to cancel", err)
		}
		if len(ids) == 0 {
			return nil
		}

		for start := 0; start < len(ids); start += cancelChunkSize {
			end := start + cancelChunkSize
			if end > len(ids) {
				end = len(ids)
			}
			r := tx.Model(&model.Payment{}).
				Where("payment_id IN ?", ids[start:end]).
				Where("payment_status NOT IN ?", cancelExcluded).
				Updates(map[string]any{
					"payment_status": model.PaymentStatusCancelled,
					"payment_notes": gorm.Expr(
						"CASE WHEN payment_notes IS NULL OR payment_notes = '' THEN ? ELSE payment_notes || ? END",
						stamp, model.NotesSeparator+stamp,
					),
				})
			if r.Error != nil {
				return helper.ErrPersistence("bulk cancel", r.Error)
			}
			affected += r.RowsAffected
		}

		events := make([]model.PaymentEvent, 0, len(ids))
		for _, id := range ids {
			events = append(events, newEvent(id, actor, model.EventBulkCancelled, map[string]any{"note": stamp}))
		}
		return insertEvents(tx, events)
	})
	if err != nil {
		return 0, helper.ErrPersistence("bulk cancel tx", err)
	}

	s.Log.Info("🚫 bulk cancel", zap.Int64("count", affected), zap.String("actor", actor.Name))
	return affected, nil
}
