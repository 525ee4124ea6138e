package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "futbolokulu_backend/internals/features/students/students/model"
	helper "futbolokulu_backend/internals/helpers"
	"futbolokulu_backend/internals/helpers/dbtime"
)

const MaxParents = 5

/* =========================================================
   REQUEST
========================================================= */

type ParentRequest struct {
	FirstName string  `json:"firstName" validate:"required,notblank,max=80"`
	LastName  string  `json:"lastName" validate:"required,notblank,max=80"`
	Phone     string  `json:"phone" validate:"required,notblank,max=30"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Relation  string  `json:"relation" validate:"required,oneof=MOTHER FATHER GUARDIAN OTHER mother father guardian other"`
	IsPrimary bool    `json:"isPrimary"`
}

type CreateStudentRequest struct {
	FirstName      string          `json:"firstName" validate:"required,notblank,max=80"`
	LastName       string          `json:"lastName" validate:"required,notblank,max=80"`
	Phone          *string         `json:"phone" validate:"omitempty,max=30"`
	BirthDate      *string         `json:"birthDate"`
	GroupID        *string         `json:"groupId" validate:"omitempty,uuid"`
	EnrollmentDate *string         `json:"enrollmentDate"`
	Parents        []ParentRequest `json:"parents" validate:"required,min=1,max=5,dive"`
}

// UpdateStudentRequest: semua field opsional. groupId "" → lepas dari group.
// parents == nil → parent tidak disentuh; kalau dikirim, set parent diganti.
type UpdateStudentRequest struct {
	FirstName *string         `json:"firstName" validate:"omitempty,notblank,max=80"`
	LastName  *string         `json:"lastName" validate:"omitempty,notblank,max=80"`
	Phone     *string         `json:"phone" validate:"omitempty,max=30"`
	BirthDate *string         `json:"birthDate"`
	GroupID   *string         `json:"groupId" validate:"omitempty,max=36"`
	Parents   []ParentRequest `json:"parents" validate:"omitempty,max=5,dive"`
}

/* =========================================================
   SERVICE INPUT
========================================================= */

type RegisterInput struct {
	FirstName      string
	LastName       string
	Phone          *string
	BirthDate      *time.Time
	GroupID        *uuid.UUID
	EnrollmentDate *time.Time
	Parents        []model.Parent
}

type UpdateInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	BirthDate  *time.Time
	GroupSet   bool // true → GroupID dipakai (nil = lepas group)
	GroupID    *uuid.UUID
	Parents    []model.Parent
	ParentsSet bool
}

func (u UpdateInput) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Phone == nil &&
		u.BirthDate == nil && !u.GroupSet && !u.ParentsSet
}

func (r CreateStudentRequest) Parse() (RegisterInput, error) {
	if err := helper.ValidateStruct(&r); err != nil {
		return RegisterInput{}, err
	}
	in := RegisterInput{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Phone:     trimPtr(r.Phone),
	}
	var err error
	if in.BirthDate, err = dbtime.ParseDatePtr(r.BirthDate); err != nil {
		return RegisterInput{}, helper.ErrField("birthDate", err.Error())
	}
	if in.EnrollmentDate, err = dbtime.ParseDatePtr(r.EnrollmentDate); err != nil {
		return RegisterInput{}, helper.ErrField("enrollmentDate", err.Error())
	}
	if r.GroupID != nil && strings.TrimSpace(*r.GroupID) != "" {
		id, _ := uuid.Parse(strings.TrimSpace(*r.GroupID))
		in.GroupID = &id
	}
	if in.Parents, err = parseParents(r.Parents); err != nil {
		return RegisterInput{}, err
	}
	return in, nil
}

func (r UpdateStudentRequest) Parse() (UpdateInput, error) {
	if err := helper.ValidateStruct(&r); err != nil {
		return UpdateInput{}, err
	}
	in := UpdateInput{
		FirstName: trimPtr(r.FirstName),
		LastName:  trimPtr(r.LastName),
	}
	if r.Phone != nil {
		p := strings.TrimSpace(*r.Phone)
		in.Phone = &p
	}
	var err error
	if in.BirthDate, err = dbtime.ParseDatePtr(r.BirthDate); err != nil {
		return UpdateInput{}, helper.ErrField("birthDate", err.Error())
	}
	if r.GroupID != nil {
		in.GroupSet = true
		if g := strings.TrimSpace(*r.GroupID); g != "" {
			id, err := uuid.Parse(g)
			if err != nil {
				return UpdateInput{}, helper.ErrField("groupId", "groupId must be a valid UUID")
			}
			in.GroupID = &id
		}
	}
	if r.Parents != nil {
		in.ParentsSet = true
		if in.Parents, err = parseParents(r.Parents); err != nil {
			return UpdateInput{}, err
		}
	}
	if in.Empty() {
		return UpdateInput{}, helper.ErrValidation("nothing to update", nil)
	}
	return in, nil
}

// parseParents: minimal satu parent dan tepat satu isPrimary.
func parseParents(reqs []ParentRequest) ([]model.Parent, error) {
	if len(reqs) == 0 {
		return nil, helper.ErrField("parents", "at least one parent is required")
	}
	if len(reqs) > MaxParents {
		return nil, helper.ErrField("parents", "too many parents")
	}
	primaries := 0
	out := make([]model.Parent, 0, len(reqs))
	for _, p := range reqs {
		if p.IsPrimary {
			primaries++
		}
		out = append(out, model.Parent{
			ParentFirstName: strings.TrimSpace(p.FirstName),
			ParentLastName:  strings.TrimSpace(p.LastName),
			ParentPhone:     strings.TrimSpace(p.Phone),
			ParentEmail:     trimPtr(p.Email),
			ParentRelation:  model.ParentRelation(strings.ToUpper(strings.TrimSpace(p.Relation))),
			ParentIsPrimary: p.IsPrimary,
		})
	}
	if primaries != 1 {
		return nil, helper.ErrField("parents", "exactly one parent must be primary")
	}
	return out, nil
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

type ParentResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Relation  string    `json:"relation"`
	IsPrimary bool      `json:"isPrimary"`
}

type StudentResponse struct {
	ID             uuid.UUID        `json:"id"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	Phone          *string          `json:"phone,omitempty"`
	BirthDate      *string          `json:"birthDate,omitempty"`
	GroupID        *uuid.UUID       `json:"groupId,omitempty"`
	IsActive       bool             `json:"isActive"`
	EnrollmentDate string           `json:"enrollmentDate"`
	CreatedByID    uuid.UUID        `json:"createdById"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	Parents        []ParentResponse `json:"parents"`
}

func ToStudentResponse(m *model.Student) StudentResponse {
	out := StudentResponse{
		ID:             m.StudentID,
		FirstName:      m.StudentFirstName,
		LastName:       m.StudentLastName,
		Phone:          m.StudentPhone,
		GroupID:        m.StudentGroupID,
		IsActive:       m.StudentIsActive,
		EnrollmentDate: dbtime.DateString(m.StudentEnrollmentDate),
		CreatedByID:    m.StudentCreatedByID,
		CreatedAt:      m.StudentCreatedAt,
		UpdatedAt:      m.StudentUpdatedAt,
		Parents:        make([]ParentResponse, 0, len(m.Parents)),
	}
	if m.StudentBirthDate != nil {
		d := dbtime.DateString(*m.StudentBirthDate)
		out.BirthDate = &d
	}
	for _, p := range m.Parents {
		out.Parents = append(out.Parents, ParentResponse{
			ID:        p.ParentID,
			FirstName: p.ParentFirstName,
			LastName:  p.ParentLastName,
			Phone:     p.ParentPhone,
			Email:     p.ParentEmail,
			Relation:  string(p.ParentRelation),
			IsPrimary: p.ParentIsPrimary,
		})
	}
	return out
}

func ToStudentResponses(rows []model.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToStudentResponse(&rows[i]))
	}
	return out
}
