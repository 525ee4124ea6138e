package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentEvent: audit trail append-only untuk setiap mutasi payment.
type PaymentEvent struct {
	PaymentEventID        uuid.UUID          `gorm:"column:payment_event_id;type:uuid;primaryKey" json:"id"`
	PaymentEventPaymentID uuid.UUID          `gorm:"column:payment_event_payment_id;type:uuid;not null;index" json:"paymentId"`
	PaymentEventActorID   uuid.UUID          `gorm:"column:payment_event_actor_id;type:uuid;not null" json:"actorId"`
	PaymentEventActorName string             `gorm:"column:payment_event_actor_name;type:varchar(120)" json:"actorName"`
	PaymentEventAction    PaymentEventAction `gorm:"column:payment_event_action;type:varchar(30);not null;index" json:"action"`
	PaymentEventDetail    datatypes.JSON     `gorm:"column:payment_event_detail" json:"detail,omitempty"`
	PaymentEventCreatedAt time.Time          `gorm:"column:payment_event_created_at;autoCreateTime" json:"timestamp"`
}

func (PaymentEvent) TableName() string { return "payment_events" }

func (m *PaymentEvent) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentEventID == uuid.Nil {
		m.PaymentEventID = uuid.New()
	}
	return nil
}
