package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futbolokulu_backend/internals/constants"
	"futbolokulu_backend/internals/databases/dbtest"
	"futbolokulu_backend/internals/features/trainings/attendance/dto"
	model "futbolokulu_backend/internals/features/trainings/attendance/model"
	"futbolokulu_backend/internals/features/trainings/attendance/service"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

func strp(s string) *string { return &s }

func TestCreate_DefaultsTrainerFromGroup(t *testing.T) {
	db := dbtest.Open(t)
	svc := service.NewTrainingService(db, nil)
	coach := dbtest.User(t, db, "Hakan Hoca", constants.RoleTrainer)
	acc := dbtest.User(t, db, "Muhasebe", constants.RoleAccounting)
	g := dbtest.Group(t, db, "U12")
	require.NoError(t, db.Model(g).Update("group_trainer_id", coach.ID).Error)
	actor := helperAuth.Identity{UserID: coach.ID, Name: coach.Name, Role: coach.Role}

	in, err := dto.CreateTrainingRequest{GroupID: g.GroupID.String(), Title: "Pas çalışması", StartsAt: "2025-04-01T17:00:00Z"}.Parse()
	require.NoError(t, err)
	tr, err := svc.Create(context.Background(), actor, in)
	require.NoError(t, err)
	require.NotNil(t, tr.TrainingTrainerID)
	assert.Equal(t, coach.ID, *tr.TrainingTrainerID)
	assert.Equal(t, dto.DefaultDurationMinutes, tr.TrainingDurationMinutes)

	bad := in
	bad.TrainerID = &acc.ID
	_, err = svc.Create(context.Background(), actor, bad)
	assert.Equal(t, 400, helper.StatusOf(err))

	bad = in
	bad.GroupID = uuid.New()
	_, err = svc.Create(context.Background(), actor, bad)
	assert.Equal(t, 400, helper.StatusOf(err))
}

func TestUpsertAttendance_InsertThenOverwrite(t *testing.T) {
	db := dbtest.Open(t)
	svc := service.NewTrainingService(db, nil)
	coach := dbtest.User(t, db, "Hakan Hoca", constants.RoleTrainer)
	g := dbtest.Group(t, db, "U12")
	a := dbtest.Student(t, db, "Arda", "Kaya", &g.GroupID, coach.ID)
	b := dbtest.Student(t, db, "Berk", "Aksoy", &g.GroupID, coach.ID)
	actor := helperAuth.Identity{UserID: coach.ID, Name: coach.Name, Role: coach.Role}

	tr, err := svc.Create(context.Background(), actor, dto.CreateTrainingInput{
		GroupID: g.GroupID, Title: "Kondisyon", StartsAt: time.Date(2025, 4, 1, 17, 0, 0, 0, time.UTC), DurationMinutes: 60,
	})
	require.NoError(t, err)

	rows, err := svc.UpsertAttendance(context.Background(), tr.TrainingID, []dto.AttendanceEntry{
		{StudentID: a.StudentID, Status: model.AttendancePresent},
		{StudentID: b.StudentID, Status: model.AttendanceAbsent},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	rows, err = svc.UpsertAttendance(context.Background(), tr.TrainingID, []dto.AttendanceEntry{
		{StudentID: b.StudentID, Status: model.AttendanceExcused, Note: strp("hasta")},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.AttendanceExcused, rows[0].AttendanceStatus)

	var n int64
	require.NoError(t, db.Model(&model.Attendance{}).Count(&n).Error)
	assert.EqualValues(t, 2, n, "unique (training, student) keeps one row per student")

	got, err := svc.Get(context.Background(), tr.TrainingID)
	require.NoError(t, err)
	require.Len(t, got.Attendance, 2)
	byStudent := map[uuid.UUID]model.Attendance{}
	for _, r := range got.Attendance {
		byStudent[r.AttendanceStudentID] = r
	}
	assert.Equal(t, model.AttendancePresent, byStudent[a.StudentID].AttendanceStatus)
	require.NotNil(t, byStudent[b.StudentID].AttendanceNote)
	assert.Equal(t, "hasta", *byStudent[b.StudentID].AttendanceNote)
}

func TestUpsertAttendance_UnknownStudentWritesNothing(t *testing.T) {
	db := dbtest.Open(t)
	svc := service.NewTrainingService(db, nil)
	coach := dbtest.User(t, db, "Hakan Hoca", constants.RoleTrainer)
	g := dbtest.Group(t, db, "U12")
	a := dbtest.Student(t, db, "Arda", "Kaya", &g.GroupID, coach.ID)
	tr, err := svc.Create(context.Background(), helperAuth.Identity{UserID: coach.ID}, dto.CreateTrainingInput{
		GroupID: g.GroupID, Title: "Şut", StartsAt: time.Date(2025, 4, 2, 17, 0, 0, 0, time.UTC), DurationMinutes: 60,
	})
	require.NoError(t, err)

	_, err = svc.UpsertAttendance(context.Background(), tr.TrainingID, []dto.AttendanceEntry{
		{StudentID: a.StudentID, Status: model.AttendancePresent},
		{StudentID: uuid.New(), Status: model.AttendanceLate},
	})
	require.Error(t, err)
	assert.Equal(t, 400, helper.StatusOf(err))

	var n int64
	require.NoError(t, db.Model(&model.Attendance{}).Count(&n).Error)
	assert.Zero(t, n)

	_, err = svc.UpsertAttendance(context.Background(), uuid.New(), []dto.AttendanceEntry{{StudentID: a.StudentID, Status: model.AttendancePresent}})
	assert.Equal(t, 404, helper.StatusOf(err))
}

func TestList_GroupAndRange(t *testing.T) {
	db := dbtest.Open(t)
	svc := service.NewTrainingService(db, nil)
	coach := dbtest.User(t, db, "Hakan Hoca", constants.RoleTrainer)
	g1 := dbtest.Group(t, db, "U10")
	g2 := dbtest.Group(t, db, "U12")
	actor := helperAuth.Identity{UserID: coach.ID}
	mk := func(g uuid.UUID, day int) {
		_, err := svc.Create(context.Background(), actor, dto.CreateTrainingInput{
			GroupID: g, Title: "Antrenman", StartsAt: time.Date(2025, 4, day, 17, 0, 0, 0, time.UTC), DurationMinutes: 90,
		})
		require.NoError(t, err)
	}
	mk(g1.GroupID, 1)
	mk(g1.GroupID, 8)
	mk(g1.GroupID, 15)
	mk(g2.GroupID, 8)

	from := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)
	rows, pg, err := svc.List(context.Background(), dto.TrainingFilter{GroupID: &g1.GroupID, From: &from, To: &to}, helper.NewPaging(1, 20, 20, 100))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.EqualValues(t, 2, pg.Total)
	assert.Equal(t, 8, rows[0].TrainingStartsAt.UTC().Day())

	rows, _, err = svc.List(context.Background(), dto.TrainingFilter{}, helper.NewPaging(1, 20, 20, 100))
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestAttendanceRequest_RejectsDuplicatesAndBadStatus(t *testing.T) {
	sid := uuid.NewString()
	_, err := dto.AttendanceRequest{Entries: []dto.AttendanceEntryRequest{
		{StudentID: sid, Status: "PRESENT"}, {StudentID: sid, Status: "LATE"},
	}}.Parse()
	assert.Equal(t, 400, helper.StatusOf(err))

	_, err = dto.AttendanceRequest{Entries: []dto.AttendanceEntryRequest{{StudentID: sid, Status: "SICK"}}}.Parse()
	assert.Equal(t, 400, helper.StatusOf(err))

	entries, err := dto.AttendanceRequest{Entries: []dto.AttendanceEntryRequest{{StudentID: sid, Status: "present"}}}.Parse()
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, entries[0].Status)
}
