package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"futbolokulu_backend/internals/constants"
	groupModel "futbolokulu_backend/internals/features/students/groups/model"
	studentModel "futbolokulu_backend/internals/features/students/students/model"
	"futbolokulu_backend/internals/features/trainings/attendance/dto"
	model "futbolokulu_backend/internals/features/trainings/attendance/model"
	userModel "futbolokulu_backend/internals/features/users/user/model"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
	"futbolokulu_backend/internals/helpers/dbtime"
)

type TrainingService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewTrainingService(db *gorm.DB, log *zap.Logger) *TrainingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TrainingService{DB: db, Log: log.Named("trainings")}
}

/* =========================================================
   CREATE
========================================================= */

func (s *TrainingService) Create(ctx context.Context, actor helperAuth.Identity, in dto.CreateTrainingInput) (*model.Training, error) {
	m := &model.Training{
		TrainingGroupID:         in.GroupID,
		TrainingTrainerID:       in.TrainerID,
		TrainingTitle:           in.Title,
		TrainingLocation:        in.Location,
		TrainingStartsAt:        in.StartsAt.UTC(),
		TrainingDurationMinutes: in.DurationMinutes,
		TrainingNotes:           in.Notes,
		TrainingCreatedByID:     actor.UserID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g groupModel.Group
		if err := tx.Where("group_id = ?", in.GroupID).Take(&g).Error; err != nil {
			if helper.IsRecordNotFound(err) {
				return helper.ErrField("groupId", "group not found")
			}
			return helper.ErrPersistence("load group", err)
		}
		// trainer default: trainer group
		if m.TrainingTrainerID == nil {
			m.TrainingTrainerID = g.GroupTrainerID
		} else if err := checkTrainer(tx, *m.TrainingTrainerID); err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			return helper.ErrPersistence("create training", err)
		}
		return nil
	})
	if err != nil {
		return nil, helper.ErrPersistence("create training tx", err)
	}

	s.Log.Info("⚽ training scheduled",
		zap.String("training_id", m.TrainingID.String()),
		zap.String("group_id", m.TrainingGroupID.String()),
		zap.String("starts_at", m.TrainingStartsAt.Format("2006-01-02 15:04")),
	)
	return m, nil
}

func checkTrainer(tx *gorm.DB, id uuid.UUID) error {
	var u userModel.UserModel
	if err := tx.Select("id", "role").Where("id = ?", id).Take(&u).Error; err != nil {
		if helper.IsRecordNotFound(err) {
			return helper.ErrField("trainerId", "trainer not found")
		}
		return helper.ErrPersistence("load trainer", err)
	}
	if !constants.CanManageTraining(u.Role) {
		return helper.ErrField("trainerId", "user cannot manage training")
	}
	return nil
}

/* =========================================================
   ATTENDANCE: INSERT ... ON CONFLICT DO UPDATE per entry
========================================================= */

func (s *TrainingService) UpsertAttendance(ctx context.Context, trainingID uuid.UUID, entries []dto.AttendanceEntry) ([]model.Attendance, error) {
	if len(entries) == 0 {
		return nil, helper.ErrField("entries", "at least one entry is required")
	}

	var out []model.Attendance
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Training{}).Where("training_id = ?", trainingID).Count(&n).Error; err != nil {
			return helper.ErrPersistence("check training", err)
		}
		if n == 0 {
			return helper.ErrNotFound("training", trainingID.String())
		}

		// semua student harus ada sebelum ada write
		ids := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.StudentID)
		}
		var found []uuid.UUID
		if err := tx.Model(&studentModel.Student{}).Where("student_id IN ?", ids).Pluck("student_id", &found).Error; err != nil {
			return helper.ErrPersistence("resolve students", err)
		}
		if len(found) != len(ids) {
			have := make(map[uuid.UUID]struct{}, len(found))
			for _, id := range found {
				have[id] = struct{}{}
			}
			fields := map[string]string{}
			for _, id := range ids {
				if _, ok := have[id]; !ok {
					fields[id.String()] = "unknown student"
				}
			}
			return helper.ErrValidation("unknown students in attendance", fields)
		}

		now := dbtime.NowUTC()
		for _, e := range entries {
			row := model.Attendance{
				AttendanceTrainingID: trainingID,
				AttendanceStudentID:  e.StudentID,
				AttendanceStatus:     e.Status,
				AttendanceNote:       e.Note,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "attendance_training_id"}, {Name: "attendance_student_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"attendance_status":     e.Status,
					"attendance_note":       e.Note,
					"attendance_updated_at": now,
				}),
			}).Create(&row).Error; err != nil {
				return helper.ErrPersistence("upsert attendance", err)
			}
		}

		if err := tx.Where("attendance_training_id = ? AND attendance_student_id IN ?", trainingID, ids).
			Order("attendance_student_id ASC").
			Find(&out).Error; err != nil {
			return helper.ErrPersistence("reload attendance", err)
		}
		return nil
	})
	if err != nil {
		return nil, helper.ErrPersistence("upsert attendance tx", err)
	}

	s.Log.Info("📋 attendance saved", zap.String("training_id", trainingID.String()), zap.Int("entries", len(out)))
	return out, nil
}

/* =========================================================
   READ
========================================================= */

func (s *TrainingService) Get(ctx context.Context, id uuid.UUID) (*model.Training, error) {
	var m model.Training
	err := s.DB.WithContext(ctx).
		Preload("Attendance", func(db *gorm.DB) *gorm.DB {
			return db.Order("attendance_student_id ASC")
		}).
		Where("training_id = ?", id).
		Take(&m).Error
	if err != nil {
		if helper.IsRecordNotFound(err) {
			return nil, helper.ErrNotFound("training", id.String())
		}
		return nil, helper.ErrPersistence("load training", err)
	}
	return &m, nil
}

func (s *TrainingService) List(ctx context.Context, f dto.TrainingFilter, p helper.Paging) ([]model.Training, helper.Pagination, error) {
	q := s.DB.WithContext(ctx).Model(&model.Training{})
	if f.GroupID != nil {
		q = q.Where("training_group_id = ?", *f.GroupID)
	}
	if f.From != nil {
		q = q.Where("training_starts_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("training_starts_at < ?", *f.To)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, helper.Pagination{}, helper.ErrPersistence("count trainings", err)
	}
	var rows []model.Training
	if err := q.Order("training_starts_at ASC, training_id ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return nil, helper.Pagination{}, helper.ErrPersistence("list trainings", err)
	}
	return rows, helper.BuildPagination(total, p), nil
}
