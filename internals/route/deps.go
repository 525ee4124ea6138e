package routes

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/configs"
	paymentService "futbolokulu_backend/internals/features/finance/payments/service"
	notificationModel "futbolokulu_backend/internals/features/notifications/notifications/model"
	notificationService "futbolokulu_backend/internals/features/notifications/notifications/service"
	studentService "futbolokulu_backend/internals/features/students/students/service"
	trainingService "futbolokulu_backend/internals/features/trainings/attendance/service"
	authService "futbolokulu_backend/internals/features/users/auth/service"
	userService "futbolokulu_backend/internals/features/users/user/service"
)

// Deps: semua service yang dipasang ke router.
type Deps struct {
	Config configs.AppConfig
	DB     *gorm.DB
	Log    *zap.Logger

	Auth       *authService.AuthService
	Users      *userService.UserService
	Students   *studentService.StudentService
	Ledger     *paymentService.Ledger
	Trainings  *trainingService.TrainingService
	Dispatcher *notificationService.Dispatcher
	Reminders  *notificationService.Reminders
}

// NewSenders: email lewat SendGrid kalau API key ada, selain itu console.
func NewSenders(cfg configs.AppConfig, log *zap.Logger) map[notificationModel.Channel]notificationService.Sender {
	sms := notificationService.NewConsoleSender(log)
	sms.From = cfg.SMSFrom
	senders := map[notificationModel.Channel]notificationService.Sender{
		notificationModel.ChannelEmail: notificationService.NewConsoleSender(log),
		notificationModel.ChannelSMS:   sms,
		notificationModel.ChannelInApp: notificationService.InAppSender{},
	}
	if cfg.SendGridAPIKey != "" && cfg.MailFrom != "" {
		senders[notificationModel.ChannelEmail] = notificationService.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFrom)
	}
	return senders
}

func NewDeps(cfg configs.AppConfig, db *gorm.DB, log *zap.Logger) *Deps {
	if log == nil {
		log = zap.NewNop()
	}
	ledger := paymentService.NewLedger(db, log)
	dispatcher := notificationService.NewDispatcher(db, log, NewSenders(cfg, log))
	return &Deps{
		Config:     cfg,
		DB:         db,
		Log:        log,
		Auth:       authService.NewAuthService(db, log, cfg.JWTSecret, cfg.JWTTTL),
		Users:      &userService.UserService{DB: db},
		Students:   studentService.NewStudentService(db, log, dispatcher),
		Ledger:     ledger,
		Trainings:  trainingService.NewTrainingService(db, log),
		Dispatcher: dispatcher,
		Reminders:  notificationService.NewReminders(db, log, ledger, dispatcher),
	}
}
