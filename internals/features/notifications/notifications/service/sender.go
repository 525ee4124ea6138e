package service

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	model "futbolokulu_backend/internals/features/notifications/notifications/model"
)

// Sender mengirim satu pesan lewat satu channel.
type Sender interface {
	Send(ctx context.Context, msg model.Message) error
}

/* =========================================================
   Console: dev / SMS (belum ada gateway SMS)
========================================================= */

type ConsoleSender struct {
	Log  *zap.Logger
	From string // sender id SMS, opsional
}

func NewConsoleSender(log *zap.Logger) *ConsoleSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConsoleSender{Log: log.Named("console_sender")}
}

func (s *ConsoleSender) Send(_ context.Context, msg model.Message) error {
	s.Log.Info("📨 outgoing message",
		zap.String("channel", string(msg.Channel)),
		zap.String("from", s.From),
		zap.String("to", msg.Recipient),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

/* =========================================================
   In-app: row notifications itu sendiri inbox-nya
========================================================= */

type InAppSender struct{}

func (InAppSender) Send(context.Context, model.Message) error { return nil }

/* =========================================================
   SendGrid: email
========================================================= */

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

type SendGridSender struct {
	key        string
	from       *sgmail.Email
	subjPrefix string

	// API dapat diganti di test
	API func(req rest.Request) (*rest.Response, error)
}

func NewSendGridSender(key, appName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		key:        key,
		from:       sgmail.NewEmail(appName, fromEmail),
		subjPrefix: "[" + appName + "] ",
		API:        sendgrid.API,
	}
}

func (s *SendGridSender) prepare(msg model.Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.RecipientName, msg.Recipient))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Body))
	return m
}

func (s *SendGridSender) Send(ctx context.Context, msg model.Message) error {
	if msg.Channel != model.ChannelEmail {
		return errors.Errorf("sendgrid cannot send %s", msg.Channel)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	req := sendgrid.GetRequest(s.key, sendGridEndpoint, sendGridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	res, err := s.API(req)
	if err != nil {
		return errors.Wrap(err, "sendgrid request")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
