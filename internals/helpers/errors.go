// file: internals/helpers/errors.go
package helper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

/* ===============================
   Error taxonomy
=================================*/

// ValidationError: input wajib hilang / format salah → 400.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// NotFoundError: referensi (student / fee type / payment) tidak ada → 404.
type NotFoundError struct {
	Resource string
	IDs      []string
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, strings.Join(e.IDs, ", "))
}

// AuthenticationError: kredensial tidak ada / tidak valid → 401.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "Unauthorized"
	}
	return e.Message
}

// AuthorizationError: user valid tapi tidak punya capability → 403.
type AuthorizationError struct {
	Capability string
}

func (e *AuthorizationError) Error() string {
	if e.Capability == "" {
		return "Forbidden"
	}
	return "Forbidden: requires " + e.Capability
}

// PersistenceError: kegagalan DB / transaksi → 500, detail hanya di log.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

/* ===============================
   Constructors
=================================*/

func ErrValidation(message string, fields map[string]string) error {
	return &ValidationError{Message: message, Fields: fields}
}

func ErrField(field, message string) error {
	return &ValidationError{Message: "validation failed", Fields: map[string]string{field: message}}
}

func ErrNotFound(resource string, ids ...string) error {
	return &NotFoundError{Resource: resource, IDs: ids}
}

func ErrUnauthenticated(message string) error {
	return &AuthenticationError{Message: message}
}

func ErrForbidden(capability string) error {
	return &AuthorizationError{Capability: capability}
}

// ErrPersistence membungkus error DB. Error domain yang sudah bertipe diteruskan apa adanya.
func ErrPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: errors.WithStack(err)}
}

// IsDomainError: error yang sudah punya status HTTP sendiri.
func IsDomainError(err error) bool {
	var (
		ve *ValidationError
		nf *NotFoundError
		ae *AuthenticationError
		ze *AuthorizationError
		pe *PersistenceError
		fe *fiber.Error
	)
	return errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &ae) ||
		errors.As(err, &ze) || errors.As(err, &pe) || errors.As(err, &fe)
}

// StatusOf memetakan error ke status HTTP.
func StatusOf(err error) int {
	var (
		ve *ValidationError
		nf *NotFoundError
		ae *AuthenticationError
		ze *AuthorizationError
		fe *fiber.Error
	)
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.As(err, &nf):
		return fiber.StatusNotFound
	case errors.As(err, &ae):
		return fiber.StatusUnauthorized
	case errors.As(err, &ze):
		return fiber.StatusForbidden
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRecordNotFound: gorm.ErrRecordNotFound dari Take/First.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint")
}
