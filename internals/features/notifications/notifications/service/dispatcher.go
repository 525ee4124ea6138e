package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "futbolokulu_backend/internals/features/notifications/notifications/model"
	helper "futbolokulu_backend/internals/helpers"
	"futbolokulu_backend/internals/helpers/dbtime"
)

const sendTimeout = 15 * time.Second

/* =========================================================
   Dispatcher: simpan QUEUED, kirim async, tandai SENT/FAILED
========================================================= */

type Dispatcher struct {
	DB      *gorm.DB
	Log     *zap.Logger
	Senders map[model.Channel]Sender

	wg sync.WaitGroup
}

func NewDispatcher(db *gorm.DB, log *zap.Logger, senders map[model.Channel]Sender) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{DB: db, Log: log.Named("dispatcher"), Senders: senders}
}

// Dispatch menyimpan row lalu mengirim di goroutine (fire and forget).
func (d *Dispatcher) Dispatch(ctx context.Context, msg model.Message) error {
	if strings.TrimSpace(msg.Recipient) == "" {
		return helper.ErrField("recipient", "recipient is required")
	}
	sender, ok := d.Senders[msg.Channel]
	if !ok {
		return helper.ErrField("channel", fmt.Sprintf("no sender for channel %q", msg.Channel))
	}

	row := model.Notification{
		NotificationChannel:   msg.Channel,
		NotificationRecipient: strings.TrimSpace(msg.Recipient),
		NotificationBody:      msg.Body,
		NotificationStatus:    model.StatusQueued,
	}
	if msg.Subject != "" {
		subj := msg.Subject
		row.NotificationSubject = &subj
	}
	if len(msg.Meta) > 0 {
		b, err := sonic.Marshal(msg.Meta)
		if err != nil {
			return helper.ErrField("meta", "meta is not serializable")
		}
		row.NotificationMeta = datatypes.JSON(b)
	}
	if err := d.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return helper.ErrPersistence("queue notification", err)
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.finish(row, fmt.Errorf("sender panic: %v", r))
			}
		}()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()
		d.finish(row, sender.Send(sendCtx, msg))
	}()
	return nil
}

func (d *Dispatcher) finish(row model.Notification, sendErr error) {
	updates := map[string]any{}
	if sendErr != nil {
		updates["notification_status"] = model.StatusFailed
		updates["notification_error"] = sendErr.Error()
		d.Log.Warn("❌ notification failed",
			zap.String("notification_id", row.NotificationID.String()),
			zap.String("channel", string(row.NotificationChannel)),
			zap.Error(sendErr),
		)
	} else {
		updates["notification_status"] = model.StatusSent
		updates["notification_sent_at"] = dbtime.NowUTC()
	}
	if err := d.DB.Model(&model.Notification{}).
		Where("notification_id = ?", row.NotificationID).
		Updates(updates).Error; err != nil {
		d.Log.Error("notification status update", zap.Error(err))
	}
}

// Wait menunggu semua pengiriman yang sedang berjalan (shutdown / test).
func (d *Dispatcher) Wait() { d.wg.Wait() }

/* =========================================================
   LIST (admin)
========================================================= */

type NotificationFilter struct {
	Channel *model.Channel
	Status  *model.Status
}

func (d *Dispatcher) List(ctx context.Context, f NotificationFilter, p helper.Paging) ([]model.Notification, helper.Pagination, error) {
	q := d.DB.WithContext(ctx).Model(&model.Notification{})
	if f.Channel != nil {
		q = q.Where("notification_channel = ?", *f.Channel)
	}
	if f.Status != nil {
		q = q.Where("notification_status = ?", *f.Status)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, helper.Pagination{}, helper.ErrPersistence("count notifications", err)
	}
	var rows []model.Notification
	if err := q.Order("notification_created_at DESC, notification_id DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return nil, helper.Pagination{}, helper.ErrPersistence("list notifications", err)
	}
	return rows, helper.BuildPagination(total, p), nil
}
