package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ErrValidation("bad", nil), fiber.StatusBadRequest},
		{"wrapped validation", errors.Wrap(ErrField("x", "required"), "ctx"), fiber.StatusBadRequest},
		{"not found", ErrNotFound("student", "s1"), fiber.StatusNotFound},
		{"unauthenticated", ErrUnauthenticated(""), fiber.StatusUnauthorized},
		{"forbidden", ErrForbidden("canManagePayments"), fiber.StatusForbidden},
		{"persistence", ErrPersistence("insert", errors.New("boom")), fiber.StatusInternalServerError},
		{"fiber error", fiber.NewError(fiber.StatusTooManyRequests, "slow"), fiber.StatusTooManyRequests},
		{"plain", errors.New("x"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestErrPersistence_KeepsDomainErrors(t *testing.T) {
	nf := ErrNotFound("fee type", "f1")
	assert.Same(t, nf, ErrPersistence("tx", nf))
	assert.Nil(t, ErrPersistence("tx", nil))

	var pe *PersistenceError
	require.True(t, errors.As(ErrPersistence("tx", errors.New("db down")), &pe))
	assert.Equal(t, "tx", pe.Op)
}

func TestNotFoundError_Message(t *testing.T) {
	assert.Equal(t, "student not found", ErrNotFound("student").Error())
	assert.Equal(t, "student not found: a, b", ErrNotFound("student", "a", "b").Error())
}

func TestErrorHandler_Shapes(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	app.Get("/validation", func(c *fiber.Ctx) error {
		return ErrValidation("validation failed", map[string]string{"amount": "amount is required"})
	})
	app.Get("/db", func(c *fiber.Ctx) error {
		return ErrPersistence("select payments", errors.New("pq: connection refused"))
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return ErrForbidden("canManagePayments")
	})

	tests := []struct {
		path     string
		status   int
		code     string
		message  string
		hasField string
	}{
		{"/validation", 400, "VALIDATION_ERROR", "validation failed", "amount"},
		{"/db", 500, "INTERNAL_ERROR", "Internal server error", ""},
		{"/forbidden", 403, "FORBIDDEN", "Forbidden: requires canManagePayments", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			raw, _ := io.ReadAll(resp.Body)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.ErrorCode)
			assert.Equal(t, tt.message, body.Message)
			assert.NotContains(t, string(raw), "connection refused")
			if tt.hasField != "" {
				assert.Contains(t, body.Errors, tt.hasField)
			}
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type child struct {
		Phone string `json:"phone" validate:"required"`
	}
	type req struct {
		Name     string  `json:"name" validate:"notblank"`
		Count    int     `json:"count" validate:"min=1,max=60"`
		Children []child `json:"children" validate:"min=1,dive"`
	}

	require.NoError(t, ValidateStruct(req{Name: "a", Count: 3, Children: []child{{Phone: "1"}}}))

	err := ValidateStruct(req{Name: "  ", Count: 0, Children: []child{{}}})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "count")
	assert.Contains(t, ve.Fields, "children[0].phone")
	assert.Equal(t, "name cannot be blank", ve.Fields["name"])
}
