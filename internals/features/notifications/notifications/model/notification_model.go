package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Channel string
type Status string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelInApp Channel = "IN_APP"
)

const (
	StatusQueued Status = "QUEUED"
	StatusSent   Status = "SENT"
	StatusFailed Status = "FAILED"
)

func ParseChannel(s string) (Channel, error) {
	switch ch := Channel(strings.ToUpper(strings.TrimSpace(s))); ch {
	case ChannelEmail, ChannelSMS, ChannelInApp:
		return ch, nil
	default:
		return "", fmt.Errorf("unknown channel %q", s)
	}
}

// Notification: satu pesan keluar (email / sms / in-app) beserta hasil kirimnya.
type Notification struct {
	NotificationID        uuid.UUID      `gorm:"column:notification_id;type:uuid;primaryKey" json:"id"`
	NotificationChannel   Channel        `gorm:"column:notification_channel;type:varchar(10);not null;index" json:"channel"`
	NotificationRecipient string         `gorm:"column:notification_recipient;type:varchar(255);not null" json:"recipient"`
	NotificationSubject   *string        `gorm:"column:notification_subject;type:varchar(255)" json:"subject,omitempty"`
	NotificationBody      string         `gorm:"column:notification_body;type:text;not null" json:"body"`
	NotificationStatus    Status         `gorm:"column:notification_status;type:varchar(10);not null;index" json:"status"`
	NotificationError     *string        `gorm:"column:notification_error;type:text" json:"error,omitempty"`
	NotificationMeta      datatypes.JSON `gorm:"column:notification_meta" json:"meta,omitempty"`
	NotificationSentAt    *time.Time     `gorm:"column:notification_sent_at" json:"sentAt,omitempty"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime;index" json:"createdAt"`
	NotificationUpdatedAt time.Time `gorm:"column:notification_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Notification) TableName() string { return "notifications" }

func (m *Notification) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	if m.NotificationStatus == "" {
		m.NotificationStatus = StatusQueued
	}
	return nil
}

// Message: input dispatcher (belum tersimpan).
type Message struct {
	Channel       Channel
	Recipient     string // email / nomor telepon / user id
	RecipientName string
	Subject       string
	Body          string
	Meta          map[string]any
}
