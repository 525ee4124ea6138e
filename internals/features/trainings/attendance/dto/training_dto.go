package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "futbolokulu_backend/internals/features/trainings/attendance/model"
	helper "futbolokulu_backend/internals/helpers"
	"futbolokulu_backend/internals/helpers/dbtime"
)

const (
	DefaultDurationMinutes = 90
	MaxAttendanceEntries   = 200
	DefaultListLimit       = 20
	MaxListLimit           = 100
)

/* =========================================================
   CREATE TRAINING
========================================================= */

type CreateTrainingRequest struct {
	GroupID         string  `json:"groupId" validate:"required,uuid"`
	TrainerID       *string `json:"trainerId" validate:"omitempty,uuid"`
	Title           string  `json:"title" validate:"required,notblank,max=120"`
	Location        *string `json:"location" validate:"omitempty,max=120"`
	StartsAt        string  `json:"startsAt" validate:"required"`
	DurationMinutes *int    `json:"durationMinutes" validate:"omitempty,min=15,max=300"`
	Notes           *string `json:"notes" validate:"omitempty,max=2000"`
}

type CreateTrainingInput struct {
	GroupID         uuid.UUID
	TrainerID       *uuid.UUID
	Title           string
	Location        *string
	StartsAt        time.Time
	DurationMinutes int
	Notes           *string
}

func (r CreateTrainingRequest) Parse() (CreateTrainingInput, error) {
	if err := helper.ValidateStruct(&r); err != nil {
		return CreateTrainingInput{}, err
	}
	startsAt, err := dbtime.ParseDate(r.StartsAt)
	if err != nil {
		return CreateTrainingInput{}, helper.ErrField("startsAt", err.Error())
	}
	in := CreateTrainingInput{
		GroupID:         uuid.MustParse(strings.TrimSpace(r.GroupID)),
		Title:           strings.TrimSpace(r.Title),
		Location:        trimPtr(r.Location),
		StartsAt:        startsAt,
		DurationMinutes: DefaultDurationMinutes,
		Notes:           trimPtr(r.Notes),
	}
	if r.DurationMinutes != nil {
		in.DurationMinutes = *r.DurationMinutes
	}
	if r.TrainerID != nil {
		id := uuid.MustParse(strings.TrimSpace(*r.TrainerID))
		in.TrainerID = &id
	}
	return in, nil
}

/* =========================================================
   ATTENDANCE (PUT, upsert)
========================================================= */

type AttendanceEntryRequest struct {
	StudentID string  `json:"studentId" validate:"required,uuid"`
	Status    string  `json:"status" validate:"required"`
	Note      *string `json:"note" validate:"omitempty,max=500"`
}

type AttendanceRequest struct {
	Entries []AttendanceEntryRequest `json:"entries" validate:"required,min=1,max=200,dive"`
}

type AttendanceEntry struct {
	StudentID uuid.UUID
	Status    model.AttendanceStatus
	Note      *string
}

// Parse: studentId duplikat dalam satu request ditolak.
func (r AttendanceRequest) Parse() ([]AttendanceEntry, error) {
	if err := helper.ValidateStruct(&r); err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]struct{}, len(r.Entries))
	out := make([]AttendanceEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		sid := uuid.MustParse(strings.TrimSpace(e.StudentID))
		if _, dup := seen[sid]; dup {
			return nil, helper.ErrField("entries", "duplicate studentId "+sid.String())
		}
		seen[sid] = struct{}{}
		st, err := model.ParseAttendanceStatus(e.Status)
		if err != nil {
			return nil, helper.ErrField("status", "status must be PRESENT, ABSENT, LATE or EXCUSED")
		}
		out = append(out, AttendanceEntry{StudentID: sid, Status: st, Note: trimPtr(e.Note)})
	}
	return out, nil
}

/* =========================================================
   LIST FILTER
========================================================= */

type TrainingFilter struct {
	GroupID *uuid.UUID
	From    *time.Time
	To      *time.Time // eksklusif
}

// ParseTrainingFilter: ?groupId= ?from=YYYY-MM-DD ?to=YYYY-MM-DD (to inklusif per hari).
func ParseTrainingFilter(c *fiber.Ctx) (TrainingFilter, error) {
	var f TrainingFilter
	if g := strings.TrimSpace(c.Query("groupId")); g != "" {
		id, err := uuid.Parse(g)
		if err != nil {
			return f, helper.ErrField("groupId", "groupId must be a valid UUID")
		}
		f.GroupID = &id
	}
	if s := strings.TrimSpace(c.Query("from")); s != "" {
		t, err := dbtime.ParseDate(s)
		if err != nil {
			return f, helper.ErrField("from", err.Error())
		}
		f.From = &t
	}
	if s := strings.TrimSpace(c.Query("to")); s != "" {
		t, err := dbtime.ParseDate(s)
		if err != nil {
			return f, helper.ErrField("to", err.Error())
		}
		if len(s) == len("2006-01-02") {
			t = t.AddDate(0, 0, 1)
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return f, helper.ErrField("to", "to must be after from")
	}
	return f, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   RESPONSE
========================================================= */

type AttendanceResponse struct {
	StudentID uuid.UUID `json:"studentId"`
	Status    string    `json:"status"`
	Note      *string   `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TrainingResponse struct {
	ID              uuid.UUID            `json:"id"`
	GroupID         uuid.UUID            `json:"groupId"`
	TrainerID       *uuid.UUID           `json:"trainerId,omitempty"`
	Title           string               `json:"title"`
	Location        *string              `json:"location,omitempty"`
	StartsAt        time.Time            `json:"startsAt"`
	EndsAt          time.Time            `json:"endsAt"`
	DurationMinutes int                  `json:"durationMinutes"`
	Notes           *string              `json:"notes,omitempty"`
	Attendance      []AttendanceResponse `json:"attendance,omitempty"`
}

func ToAttendanceResponses(rows []model.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, AttendanceResponse{
			StudentID: a.AttendanceStudentID,
			Status:    string(a.AttendanceStatus),
			Note:      a.AttendanceNote,
			UpdatedAt: a.AttendanceUpdatedAt,
		})
	}
	return out
}

func ToTrainingResponse(m *model.Training) TrainingResponse {
	out := TrainingResponse{
		ID:              m.TrainingID,
		GroupID:         m.TrainingGroupID,
		TrainerID:       m.TrainingTrainerID,
		Title:           m.TrainingTitle,
		Location:        m.TrainingLocation,
		StartsAt:        m.TrainingStartsAt,
		EndsAt:          m.EndsAt(),
		DurationMinutes: m.TrainingDurationMinutes,
		Notes:           m.TrainingNotes,
	}
	if len(m.Attendance) > 0 {
		out.Attendance = ToAttendanceResponses(m.Attendance)
	}
	return out
}

func ToTrainingResponses(rows []model.Training) []TrainingResponse {
	out := make([]TrainingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToTrainingResponse(&rows[i]))
	}
	return out
}
