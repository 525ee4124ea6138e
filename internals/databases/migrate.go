package database

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	feeTypeModel "futbolokulu_backend/internals/features/finance/fee_types/model"
	paymentModel "futbolokulu_backend/internals/features/finance/payments/model"
	notificationModel "futbolokulu_backend/internals/features/notifications/notifications/model"
	groupModel "futbolokulu_backend/internals/features/students/groups/model"
	studentModel "futbolokulu_backend/internals/features/students/students/model"
	attendanceModel "futbolokulu_backend/internals/features/trainings/attendance/model"
	authModel "futbolokulu_backend/internals/features/users/auth/model"
	userModel "futbolokulu_backend/internals/features/users/user/model"
)

// Models: urutan mengikuti dependensi FK.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&groupModel.Group{},
		&studentModel.Student{},
		&studentModel.Parent{},
		&feeTypeModel.FeeType{},
		&paymentModel.Payment{},
		&paymentModel.PaymentEvent{},
		&attendanceModel.Training{},
		&attendanceModel.Attendance{},
		&notificationModel.Notification{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
