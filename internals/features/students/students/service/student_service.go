package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	notificationModel "futbolokulu_backend/internals/features/notifications/notifications/model"
	groupModel "futbolokulu_backend/internals/features/students/groups/model"
	"futbolokulu_backend/internals/features/students/students/dto"
	model "futbolokulu_backend/internals/features/students/students/model"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

// Notifier: diimplementasi notifications.Dispatcher.
type Notifier interface {
	Dispatch(ctx context.Context, msg notificationModel.Message) error
}

type StudentService struct {
	DB       *gorm.DB
	Log      *zap.Logger
	Notifier Notifier // opsional
}

func NewStudentService(db *gorm.DB, log *zap.Logger, n Notifier) *StudentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StudentService{DB: db, Log: log.Named("students"), Notifier: n}
}

func groupExists(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&groupModel.Group{}).Where("group_id = ?", id).Count(&n).Error; err != nil {
		return helper.ErrPersistence("check group", err)
	}
	if n == 0 {
		return helper.ErrField("groupId", "group not found")
	}
	return nil
}

/* =========================================================
   REGISTER: student + parents, all or nothing
========================================================= */

func (s *StudentService) Register(ctx context.Context, actor helperAuth.Identity, in dto.RegisterInput) (*model.Student, error) {
	m := &model.Student{
		StudentFirstName:   in.FirstName,
		StudentLastName:    in.LastName,
		StudentPhone:       in.Phone,
		StudentBirthDate:   in.BirthDate,
		StudentGroupID:     in.GroupID,
		StudentIsActive:    true,
		StudentCreatedByID: actor.UserID,
		Parents:            in.Parents,
	}
	if in.EnrollmentDate != nil {
		m.StudentEnrollmentDate = *in.EnrollmentDate
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.GroupID != nil {
			if err := groupExists(tx, *in.GroupID); err != nil {
				return err
			}
		}
		// association parents ikut ter-insert dalam tx yang sama
		if err := tx.Create(m).Error; err != nil {
			return helper.ErrPersistence("create student", err)
		}
		return nil
	})
	if err != nil {
		return nil, helper.ErrPersistence("register student tx", err)
	}

	s.Log.Info("🎉 student registered",
		zap.String("student_id", m.StudentID.String()),
		zap.Int("parents", len(m.Parents)),
		zap.String("actor", actor.Name),
	)
	s.welcome(ctx, m)
	return m, nil
}

// welcome: kirim setelah commit; gagal kirim tidak membatalkan registrasi.
func (s *StudentService) welcome(ctx context.Context, m *model.Student) {
	if s.Notifier == nil {
		return
	}
	p := m.PrimaryParent()
	if p == nil {
		return
	}
	msg := notificationModel.Message{
		Channel:       notificationModel.ChannelSMS,
		Recipient:     p.ParentPhone,
		RecipientName: p.FullName(),
		Subject:       "Futbol Okulu'na hoş geldiniz",
		Body: fmt.Sprintf("Dear %s, %s has been registered at our football school. Welcome!",
			p.FullName(), m.FullName()),
		Meta: map[string]any{
			"kind":      "student_welcome",
			"studentId": m.StudentID.String(),
			"parentId":  p.ParentID.String(),
		},
	}
	if p.ParentEmail != nil && *p.ParentEmail != "" {
		msg.Channel = notificationModel.ChannelEmail
		msg.Recipient = *p.ParentEmail
	}
	if err := s.Notifier.Dispatch(context.WithoutCancel(ctx), msg); err != nil {
		s.Log.Warn("⚠️ welcome notification not queued",
			zap.String("student_id", m.StudentID.String()),
			zap.Error(err),
		)
	}
}

/* =========================================================
   UPDATE: partial; parents diganti kalau dikirim
========================================================= */

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, in dto.UpdateInput) (*model.Student, error) {
	var out model.Student
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Student
		if err := tx.Where("student_id = ?", id).Take(&cur).Error; err != nil {
			if helper.IsRecordNotFound(err) {
				return helper.ErrNotFound("student", id.String())
			}
			return helper.ErrPersistence("load student", err)
		}

		updates := map[string]any{}
		if in.FirstName != nil {
			updates["student_first_name"] = *in.FirstName
		}
		if in.LastName != nil {
			updates["student_last_name"] = *in.LastName
		}
		if in.Phone != nil {
			if *in.Phone == "" {
				updates["student_phone"] = nil
			} else {
				updates["student_phone"] = *in.Phone
			}
		}
		if in.BirthDate != nil {
			updates["student_birth_date"] = *in.BirthDate
		}
		if in.GroupSet {
			if in.GroupID != nil {
				if err := groupExists(tx, *in.GroupID); err != nil {
					return err
				}
				updates["student_group_id"] = *in.GroupID
			} else {
				updates["student_group_id"] = nil
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(&model.Student{}).Where("student_id = ?", id).Updates(updates).Error; err != nil {
				return helper.ErrPersistence("update student", err)
			}
		}

		if in.ParentsSet {
			if err := tx.Where("parent_student_id = ?", id).Delete(&model.Parent{}).Error; err != nil {
				return helper.ErrPersistence("delete parents", err)
			}
			parents := make([]model.Parent, len(in.Parents))
			copy(parents, in.Parents)
			for i := range parents {
				parents[i].ParentID = uuid.Nil
				parents[i].ParentStudentID = id
			}
			if err := tx.Create(&parents).Error; err != nil {
				return helper.ErrPersistence("create parents", err)
			}
		}

		return loadWithParents(tx, id, &out)
	})
	if err != nil {
		return nil, helper.ErrPersistence("update student tx", err)
	}
	return &out, nil
}

/* =========================================================
   DEACTIVATE: soft delete, payments tetap
========================================================= */

func (s *StudentService) Deactivate(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var out model.Student
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := tx.Model(&model.Student{}).Where("student_id = ?", id).Update("student_is_active", false)
		if r.Error != nil {
			return helper.ErrPersistence("deactivate student", r.Error)
		}
		if r.RowsAffected == 0 {
			return helper.ErrNotFound("student", id.String())
		}
		return loadWithParents(tx, id, &out)
	})
	if err != nil {
		return nil, helper.ErrPersistence("deactivate student tx", err)
	}
	s.Log.Info("🗃️ student deactivated", zap.String("student_id", id.String()))
	return &out, nil
}

/* =========================================================
   READ
========================================================= */

func loadWithParents(tx *gorm.DB, id uuid.UUID, out *model.Student) error {
	err := tx.Preload("Parents", func(db *gorm.DB) *gorm.DB {
		return db.Order("parent_is_primary DESC, parent_created_at ASC")
	}).Where("student_id = ?", id).Take(out).Error
	if err != nil {
		if helper.IsRecordNotFound(err) {
			return helper.ErrNotFound("student", id.String())
		}
		return helper.ErrPersistence("load student", err)
	}
	return nil
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var out model.Student
	if err := loadWithParents(s.DB.WithContext(ctx), id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *StudentService) List(ctx context.Context, f dto.StudentFilter, p helper.Paging) ([]model.Student, helper.Pagination, error) {
	q := s.DB.WithContext(ctx).Model(&model.Student{})
	if f.Active != nil {
		q = q.Where("student_is_active = ?", *f.Active)
	}
	if f.GroupID != nil {
		q = q.Where("student_group_id = ?", *f.GroupID)
	}
	if f.Search != "" {
		like := helper.LikeContains(f.Search)
		q = q.Where(`(LOWER(student_first_name) LIKE ? ESCAPE '\' OR LOWER(student_last_name) LIKE ? ESCAPE '\')`, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, helper.Pagination{}, helper.ErrPersistence("count students", err)
	}

	var rows []model.Student
	if err := q.Preload("Parents", func(db *gorm.DB) *gorm.DB {
		return db.Order("parent_is_primary DESC, parent_created_at ASC")
	}).
		Order("student_last_name ASC, student_first_name ASC, student_id ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return nil, helper.Pagination{}, helper.ErrPersistence("list students", err)
	}
	return rows, helper.BuildPagination(total, p), nil
}
