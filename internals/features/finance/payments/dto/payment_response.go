package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	model "futbolokulu_backend/internals/features/finance/payments/model"
)

/* =========================================================
   RESPONSE
========================================================= */

type StudentBrief struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	GroupID   *uuid.UUID `json:"groupId,omitempty"`
}

type FeeTypeBrief struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Period string    `json:"period"`
}

type PaymentResponse struct {
	ID              uuid.UUID        `json:"id"`
	StudentID       uuid.UUID        `json:"studentId"`
	FeeTypeID       uuid.UUID        `json:"feeTypeId"`
	Amount          decimal.Decimal  `json:"amount"`
	PaidAmount      *decimal.Decimal `json:"paidAmount"`
	DueDate         time.Time        `json:"dueDate"`
	PaidDate        *time.Time       `json:"paidDate"`
	PaymentMethod   *string          `json:"paymentMethod"`
	Status          string           `json:"status"`
	ReferenceNumber *string          `json:"referenceNumber"`
	Notes           *string          `json:"notes"`
	IsOverdue       bool             `json:"isOverdue"`
	CreatedByID     uuid.UUID        `json:"createdById"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`

	Student *StudentBrief `json:"student,omitempty"`
	FeeType *FeeTypeBrief `json:"feeType,omitempty"`
}

type PaymentEventResponse struct {
	ID        uuid.UUID      `json:"id"`
	Action    string         `json:"action"`
	ActorID   uuid.UUID      `json:"actorId"`
	ActorName string         `json:"actorName"`
	Detail    datatypes.JSON `json:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type PaymentDetailResponse struct {
	PaymentResponse
	Events []PaymentEventResponse `json:"events"`
}

type PaymentSummary struct {
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	Count        int64           `json:"count"`
	OverdueCount int64           `json:"overdueCount"`
}

type OverdueStudent struct {
	StudentID uuid.UUID       `json:"studentId"`
	Count     int64           `json:"count"`
	Remaining decimal.Decimal `json:"remaining"`
}

/* =========================================================
   MAPPERS
========================================================= */

func ToPaymentResponse(m *model.Payment, now time.Time) PaymentResponse {
	out := PaymentResponse{
		ID:              m.PaymentID,
		StudentID:       m.PaymentStudentID,
		FeeTypeID:       m.PaymentFeeTypeID,
		Amount:          m.PaymentAmount,
		PaidAmount:      m.PaymentPaidAmount,
		DueDate:         m.PaymentDueDate,
		PaidDate:        m.PaymentPaidDate,
		Status:          string(m.PaymentStatus),
		ReferenceNumber: m.PaymentReferenceNumber,
		Notes:           m.PaymentNotes,
		IsOverdue:       m.IsOverdue(now),
		CreatedByID:     m.PaymentCreatedByID,
		CreatedAt:       m.PaymentCreatedAt,
		UpdatedAt:       m.PaymentUpdatedAt,
	}
	if m.PaymentMethod != nil {
		s := string(*m.PaymentMethod)
		out.PaymentMethod = &s
	}
	if m.Student != nil {
		out.Student = &StudentBrief{
			ID:        m.Student.StudentID,
			FirstName: m.Student.StudentFirstName,
			LastName:  m.Student.StudentLastName,
			GroupID:   m.Student.StudentGroupID,
		}
	}
	if m.FeeType != nil {
		out.FeeType = &FeeTypeBrief{
			ID:     m.FeeType.FeeTypeID,
			Name:   m.FeeType.FeeTypeName,
			Period: string(m.FeeType.FeeTypePeriod),
		}
	}
	return out
}

func ToPaymentResponses(rows []model.Payment, now time.Time) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToPaymentResponse(&rows[i], now))
	}
	return out
}

func ToPaymentDetail(m *model.Payment, events []model.PaymentEvent, now time.Time) PaymentDetailResponse {
	out := PaymentDetailResponse{
		PaymentResponse: ToPaymentResponse(m, now),
		Events:          make([]PaymentEventResponse, 0, len(events)),
	}
	for _, e := range events {
		out.Events = append(out.Events, PaymentEventResponse{
			ID:        e.PaymentEventID,
			Action:    string(e.PaymentEventAction),
			ActorID:   e.PaymentEventActorID,
			ActorName: e.PaymentEventActorName,
			Detail:    e.PaymentEventDetail,
			Timestamp: e.PaymentEventCreatedAt,
		})
	}
	return out
}
