package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futbolokulu_backend/internals/databases/dbtest"
	model "futbolokulu_backend/internals/features/notifications/notifications/model"
	"futbolokulu_backend/internals/features/notifications/notifications/service"
	helper "futbolokulu_backend/internals/helpers"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []model.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, m model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	return r.err
}

type panicSender struct{}

func (panicSender) Send(context.Context, model.Message) error { panic("boom") }

func TestDispatch_MarksSentAndFailed(t *testing.T) {
	db := dbtest.Open(t)
	ok := &recordingSender{}
	bad := &recordingSender{err: errors.New("smtp down")}
	d := service.NewDispatcher(db, nil, map[model.Channel]service.Sender{
		model.ChannelEmail: ok,
		model.ChannelSMS:   bad,
		model.ChannelInApp: panicSender{},
	})
	ctx := context.Background()

	require.NoError(t, d.Dispatch(ctx, model.Message{Channel: model.ChannelEmail, Recipient: "veli@example.com", Subject: "Merhaba", Body: "hi", Meta: map[string]any{"kind": "test"}}))
	require.NoError(t, d.Dispatch(ctx, model.Message{Channel: model.ChannelSMS, Recipient: "+905550000000", Body: "hi"}))
	require.NoError(t, d.Dispatch(ctx, model.Message{Channel: model.ChannelInApp, Recipient: "user-1", Body: "hi"}))
	d.Wait()

	var rows []model.Notification
	require.NoError(t, db.Order("notification_channel").Find(&rows).Error)
	require.Len(t, rows, 3)
	byChannel := map[model.Channel]model.Notification{}
	for _, r := range rows {
		byChannel[r.NotificationChannel] = r
	}

	email := byChannel[model.ChannelEmail]
	assert.Equal(t, model.StatusSent, email.NotificationStatus)
	assert.NotNil(t, email.NotificationSentAt)
	assert.JSONEq(t, `{"kind":"test"}`, string(email.NotificationMeta))
	require.NotNil(t, email.NotificationSubject)
	assert.Equal(t, "Merhaba", *email.NotificationSubject)

	sms := byChannel[model.ChannelSMS]
	assert.Equal(t, model.StatusFailed, sms.NotificationStatus)
	require.NotNil(t, sms.NotificationError)
	assert.Contains(t, *sms.NotificationError, "smtp down")
	assert.Nil(t, sms.NotificationSentAt)

	inApp := byChannel[model.ChannelInApp]
	assert.Equal(t, model.StatusFailed, inApp.NotificationStatus)
	assert.Contains(t, *inApp.NotificationError, "panic")
}

func TestDispatch_RejectsBadMessages(t *testing.T) {
	db := dbtest.Open(t)
	d := service.NewDispatcher(db, nil, map[model.Channel]service.Sender{model.ChannelEmail: &recordingSender{}})

	err := d.Dispatch(context.Background(), model.Message{Channel: model.ChannelEmail, Recipient: "  "})
	assert.Equal(t, 400, helper.StatusOf(err))
	err = d.Dispatch(context.Background(), model.Message{Channel: model.ChannelSMS, Recipient: "+90555"})
	assert.Equal(t, 400, helper.StatusOf(err))

	var n int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDispatcher_ListFilters(t *testing.T) {
	db := dbtest.Open(t)
	d := service.NewDispatcher(db, nil, map[model.Channel]service.Sender{
		model.ChannelEmail: &recordingSender{},
		model.ChannelSMS:   &recordingSender{err: errors.New("x")},
	})
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Dispatch(context.Background(), model.Message{Channel: model.ChannelEmail, Recipient: "a@example.com", Body: "b"}))
	}
	require.NoError(t, d.Dispatch(context.Background(), model.Message{Channel: model.ChannelSMS, Recipient: "+90", Body: "b"}))
	d.Wait()

	failed := model.StatusFailed
	rows, pg, err := d.List(context.Background(), service.NotificationFilter{Status: &failed}, helper.NewPaging(1, 20, 20, 100))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 1, pg.Total)

	email := model.ChannelEmail
	rows, pg, err = d.List(context.Background(), service.NotificationFilter{Channel: &email}, helper.NewPaging(1, 2, 20, 100))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2, pg.Pages)
}

func TestSendGridSender_BuildsRequest(t *testing.T) {
	s := service.NewSendGridSender("SG.key", "Futbol Okulu", "noreply@futbolokulu.test")
	var got rest.Request
	s.API = func(req rest.Request) (*rest.Response, error) {
		got = req
		return &rest.Response{StatusCode: 202}, nil
	}

	err := s.Send(context.Background(), model.Message{
		Channel: model.ChannelEmail, Recipient: "veli@example.com", RecipientName: "Zeynep", Subject: "Hatırlatma", Body: "ödeme",
	})
	require.NoError(t, err)
	assert.Equal(t, rest.Post, got.Method)
	assert.Equal(t, "Bearer SG.key", got.Headers["Authorization"])
	body := string(got.Body)
	assert.Contains(t, body, "veli@example.com")
	assert.Contains(t, body, "[Futbol Okulu] Hatırlatma")

	s.API = func(rest.Request) (*rest.Response, error) {
		return &rest.Response{StatusCode: 401, Body: "unauthorized"}, nil
	}
	assert.Error(t, s.Send(context.Background(), model.Message{Channel: model.ChannelEmail, Recipient: "x@example.com"}))
	assert.Error(t, s.Send(context.Background(), model.Message{Channel: model.ChannelSMS, Recipient: "+90"}))
}
