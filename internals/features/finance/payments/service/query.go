package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/features/finance/payments/dto"
	model "futbolokulu_backend/internals/features/finance/payments/model"
	helper "futbolokulu_backend/internals/helpers"
)

// overdueSQL: PENDING/PARTIAL yang sudah lewat jatuh tempo.
const overdueSQL = "(payments.payment_status IN ? AND payments.payment_due_date < ?)"

// filterScope dipakai list, summary, dan bulk cancel supaya populasinya identik.
func filterScope(f dto.PaymentFilter, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		switch {
		case f.AllStatuses:
		case f.Status != nil && *f.Status == model.PaymentStatusOverdue:
			q = q.Where("("+overdueSQL+" OR payments.payment_status = ?)",
				model.OpenStatuses, now, string(model.PaymentStatusOverdue))
		case f.Status != nil:
			q = q.Where("payments.payment_status = ?", string(*f.Status))
		default:
			q = q.Where("payments.payment_status <> ?", string(model.PaymentStatusCancelled))
		}

		if f.StudentID != nil {
			q = q.Where("payments.payment_student_id = ?", *f.StudentID)
		}
		if f.GroupID != nil {
			q = q.Where("payments.payment_student_id IN (SELECT student_id FROM students WHERE student_group_id = ?)", *f.GroupID)
		}
		if f.Search != "" {
			like := helper.LikeContains(f.Search)
			q = q.Where(`payments.payment_student_id IN (
				SELECT student_id FROM students
				WHERE LOWER(student_first_name) LIKE ? ESCAPE '\' OR LOWER(student_last_name) LIKE ? ESCAPE '\')`,
				like, like)
		}
		if f.Overdue {
			q = q.Where(overdueSQL, model.OpenStatuses, now)
		}
		return q
	}
}

func orderClause(s dto.PaymentSort) string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	switch s.Field {
	case dto.SortByAmount:
		return "payments.payment_amount " + dir
	case dto.SortByStudentLastName:
		return "students.student_last_name " + dir
	default:
		return "payments.payment_due_date " + dir
	}
}

/* =========================================================
   LIST + SUMMARY
========================================================= */

type ListResult struct {
	Payments   []model.Payment
	Pagination helper.Pagination
	Summary    dto.PaymentSummary
}

type summaryRow struct {
	TotalAmount  decimal.Decimal
	TotalPaid    decimal.Decimal
	Count        int64
	OverdueCount int64
}

func (s *Ledger) List(ctx context.Context, f dto.PaymentFilter, p helper.Paging, sort dto.PaymentSort) (*ListResult, error) {
	now := s.now()
	db := s.DB.WithContext(ctx)
	scope := filterScope(f, now)

	summary, err := s.summarize(db, scope, now)
	if err != nil {
		return nil, err
	}

	q := db.Model(&model.Payment{}).Scopes(scope)
	if sort.Field == dto.SortByStudentLastName {
		q = q.Select("payments.*").
			Joins("LEFT JOIN students ON students.student_id = payments.payment_student_id")
	}

	var rows []model.Payment
	if err := q.Order(orderClause(sort)).
		Order("payments.payment_created_at ASC").
		Order("payments.payment_id ASC").
		Preload("Student").
		Preload("FeeType").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return nil, helper.ErrPersistence("list payments", err)
	}

	return &ListResult{
		Payments:   rows,
		Pagination: helper.BuildPagination(summary.Count, p),
		Summary:    summary,
	}, nil
}

func (s *Ledger) summarize(db *gorm.DB, scope func(*gorm.DB) *gorm.DB, now time.Time) (dto.PaymentSummary, error) {
	var row summaryRow
	err := db.Model(&model.Payment{}).
		Scopes(scope).
		Select(`COALESCE(SUM(payments.payment_amount), 0) AS total_amount,
			COALESCE(SUM(payments.payment_paid_amount), 0) AS total_paid,
			COUNT(*) AS count,
			COALESCE(SUM(CASE WHEN `+overdueSQL+` THEN 1 ELSE 0 END), 0) AS overdue_count`,
			model.OpenStatuses, now).
		Scan(&row).Error
	if err != nil {
		return dto.PaymentSummary{}, helper.ErrPersistence("summarize payments", err)
	}
	return dto.PaymentSummary{
		TotalAmount:  row.TotalAmount.Round(2),
		TotalPaid:    row.TotalPaid.Round(2),
		Count:        row.Count,
		OverdueCount: row.OverdueCount,
	}, nil
}

/* =========================================================
   GET (detail + event log)
========================================================= */

func (s *Ledger) Get(ctx context.Context, id uuid.UUID) (*model.Payment, []model.PaymentEvent, error) {
	db := s.DB.WithContext(ctx)

	var p model.Payment
	if err := db.Preload("Student").Preload("FeeType").
		Where("payment_id = ?", id).Take(&p).Error; err != nil {
		if helper.IsRecordNotFound(err) {
			return nil, nil, helper.ErrNotFound("payment", id.String())
		}
		return nil, nil, helper.ErrPersistence("get payment", err)
	}

	var events []model.PaymentEvent
	if err := db.Where("payment_event_payment_id = ?", id).
		Order("payment_event_created_at ASC").
		Find(&events).Error; err != nil {
		return nil, nil, helper.ErrPersistence("list payment events", err)
	}
	return &p, events, nil
}

/* =========================================================
   OVERDUE per murid (dipakai reminder)
========================================================= */

type overdueRow struct {
	StudentID uuid.UUID
	Count     int64
	Remaining decimal.Decimal
}

func (s *Ledger) OverdueByStudent(ctx context.Context) ([]dto.OverdueStudent, error) {
	now := s.now()
	var rows []overdueRow
	if err := s.DB.WithContext(ctx).Model(&model.Payment{}).
		Select(`payments.payment_student_id AS student_id,
			COUNT(*) AS count,
			COALESCE(SUM(payments.payment_amount - COALESCE(payments.payment_paid_amount, 0)), 0) AS remaining`).
		Where(overdueSQL, model.OpenStatuses, now).
		Group("payments.payment_student_id").
		Order("payments.payment_student_id").
		Scan(&rows).Error; err != nil {
		return nil, helper.ErrPersistence("overdue by student", err)
	}

	out := make([]dto.OverdueStudent, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.OverdueStudent{
			StudentID: r.StudentID,
			Count:     r.Count,
			Remaining: r.Remaining.Round(2),
		})
	}
	return out, nil
}
