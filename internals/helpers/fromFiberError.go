package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FromError menulis error bertipe ke response JSON yang konsisten.
// PersistenceError dan error tak dikenal → 500 dengan pesan generic.
func FromError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)

	var ve *ValidationError
	if errors.As(err, &ve) {
		return JsonValidationError(c, ve.Message, ve.Fields)
	}
	if status >= fiber.StatusInternalServerError {
		return JsonError(c, status, "Internal server error")
	}
	return JsonError(c, status, errors.Cause(err).Error())
}

// ErrorHandler dipasang di fiber.Config; semua error dari handler/middleware lewat sini.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		if StatusOf(err) >= fiber.StatusInternalServerError {
			reqID, _ := c.Locals("reqid").(string)
			log.Error("request failed",
				zap.String("request_id", reqID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return FromError(c, err)
	}
}
