package route_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/constants"
	"futbolokulu_backend/internals/databases/dbtest"
	feeTypeModel "futbolokulu_backend/internals/features/finance/fee_types/model"
	model "futbolokulu_backend/internals/features/finance/payments/model"
	"futbolokulu_backend/internals/features/finance/payments/route"
	"futbolokulu_backend/internals/features/finance/payments/service"
	helper "futbolokulu_backend/internals/helpers"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
)

const secret = "route-test-secret"

type harness struct {
	app *fiber.App
	db  *gorm.DB
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := dbtest.Open(t)
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(nil)})
	api := app.Group("/api")
	route.PaymentRoutes(api, authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{Secret: secret}), service.NewLedger(db, nil))
	return &harness{app: app, db: db}
}

func token(t *testing.T, role constants.Role) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"name": "Zeynep Acar",
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func (h *harness) call(t *testing.T, method, path, tok string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (h *harness) paymentCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.Model(&model.Payment{}).Count(&n).Error)
	return n
}

func TestCreatePayment_AuthGate(t *testing.T) {
	h := newHarness(t)
	creator := dbtest.User(t, h.db, "Admin", constants.RoleAdmin)
	s := dbtest.Student(t, h.db, "Emre", "Demir", nil, creator.ID)
	fee := dbtest.FeeType(t, h.db, "Aylik", 500, feeTypeModel.FeePeriodMonthly)
	body := map[string]any{
		"studentId": s.StudentID, "feeTypeId": fee.FeeTypeID, "amount": 500, "startDate": "2025-01-01",
	}

	code, _ := h.call(t, "POST", "/api/payments", "", body)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, out := h.call(t, "POST", "/api/payments", token(t, constants.RoleTrainer), body)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", out["error_code"])

	code, _ = h.call(t, "POST", "/api/payments", token(t, constants.RoleSecretary), body)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Zero(t, h.paymentCount(t))

	code, _ = h.call(t, "GET", "/api/payments", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestBulkEndpoints_AuthGate(t *testing.T) {
	h := newHarness(t)
	creator := dbtest.User(t, h.db, "Admin", constants.RoleAdmin)
	g := dbtest.Group(t, h.db, "U10")
	s := dbtest.Student(t, h.db, "Emre", "Demir", &g.GroupID, creator.ID)
	fee := dbtest.FeeType(t, h.db, "Aylik", 500, feeTypeModel.FeePeriodMonthly)
	p := &model.Payment{
		PaymentStudentID:   s.StudentID,
		PaymentFeeTypeID:   fee.FeeTypeID,
		PaymentAmount:      decimal.NewFromInt(500),
		PaymentDueDate:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		PaymentStatus:      model.PaymentStatusPending,
		PaymentCreatedByID: creator.ID,
	}
	require.NoError(t, h.db.Create(p).Error)

	cancelPath := "/api/payments?groupId=" + g.GroupID.String()
	collect := map[string]any{"action": "bulk_collect", "paymentIds": []string{p.PaymentID.String()}}
	charge := map[string]any{"action": "bulk_charge", "feeTypeId": fee.FeeTypeID, "groupId": g.GroupID, "dueDate": "2025-06-01"}

	tests := []struct {
		name   string
		method string
		path   string
		tok    string
		body   any
		status int
	}{
		{"cancel without token", "DELETE", cancelPath, "", nil, fiber.StatusUnauthorized},
		{"cancel as trainer", "DELETE", cancelPath, token(t, constants.RoleTrainer), nil, fiber.StatusForbidden},
		{"cancel as secretary", "DELETE", cancelPath, token(t, constants.RoleSecretary), nil, fiber.StatusForbidden},
		{"collect without token", "POST", "/api/payments/bulk", "", collect, fiber.StatusUnauthorized},
		{"collect as secretary", "POST", "/api/payments/bulk", token(t, constants.RoleSecretary), collect, fiber.StatusForbidden},
		{"charge as trainer", "POST", "/api/payments/bulk", token(t, constants.RoleTrainer), charge, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := h.call(t, tt.method, tt.path, tt.tok, tt.body)
			assert.Equal(t, tt.status, code, out)
		})
	}

	assert.EqualValues(t, 1, h.paymentCount(t))
	var got model.Payment
	require.NoError(t, h.db.Where("payment_id = ?", p.PaymentID).Take(&got).Error)
	assert.Equal(t, model.PaymentStatusPending, got.PaymentStatus)
	assert.Nil(t, got.PaymentPaidAmount)
	assert.Nil(t, got.PaymentNotes)
}

func TestCreatePayment_InstallmentPlan(t *testing.T) {
	h := newHarness(t)
	creator := dbtest.User(t, h.db, "Admin", constants.RoleAdmin)
	s := dbtest.Student(t, h.db, "Emre", "Demir", nil, creator.ID)
	fee := dbtest.FeeType(t, h.db, "Aylik", 500, feeTypeModel.FeePeriodMonthly)

	code, out := h.call(t, "POST", "/api/payments", token(t, constants.RoleAccounting), map[string]any{
		"studentId":        s.StudentID,
		"feeTypeId":        fee.FeeTypeID,
		"amount":           500,
		"installmentCount": 3,
		"startDate":        "2025-01-01",
	})
	require.Equal(t, fiber.StatusCreated, code, out)
	assert.EqualValues(t, 3, out["count"])
	planID, ok := out["planId"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^PLAN_\d+_`+s.StudentID.String()[:8]+`$`, planID)

	payments, ok := out["payments"].([]any)
	require.True(t, ok)
	require.Len(t, payments, 3)
	first := payments[0].(map[string]any)
	assert.Equal(t, planID, first["referenceNumber"])
	assert.Equal(t, "PENDING", first["status"])
	assert.Contains(t, first["notes"], "Vade 1/3")
	assert.Contains(t, first, "isOverdue")
}

func TestCreatePayment_BadInput(t *testing.T) {
	h := newHarness(t)
	creator := dbtest.User(t, h.db, "Admin", constants.RoleAdmin)
	s := dbtest.Student(t, h.db, "Emre", "Demir", nil, creator.ID)
	fee := dbtest.FeeType(t, h.db, "Aylik", 500, feeTypeModel.FeePeriodMonthly)
	tok := token(t, constants.RoleAdmin)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing amount", map[string]any{"studentId": s.StudentID, "feeTypeId": fee.FeeTypeID, "startDate": "2025-01-01"}},
		{"missing startDate", map[string]any{"studentId": s.StudentID, "feeTypeId": fee.FeeTypeID, "amount": 10}},
		{"bad date", map[string]any{"studentId": s.StudentID, "feeTypeId": fee.FeeTypeID, "amount": 10, "startDate": "01/02/2025"}},
		{"zero amount", map[string]any{"studentId": s.StudentID, "feeTypeId": fee.FeeTypeID, "amount": 0, "startDate": "2025-01-01"}},
		{"too many installments", map[string]any{"studentId": s.StudentID, "feeTypeId": fee.FeeTypeID, "amount": 10, "installmentCount": 61, "startDate": "2025-01-01"}},
		{"unknown student", map[string]any{"studentId": uuid.New(), "feeTypeId": fee.FeeTypeID, "amount": 10, "startDate": "2025-01-01"}},
		{"unknown fee type", map[string]any{"studentId": s.StudentID, "feeTypeId": uuid.New(), "amount": 10, "startDate": "2025-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := h.call(t, "POST", "/api/payments", tok, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, code, out)
			assert.Equal(t, false, out["success"])
		})
	}
	assert.Zero(t, h.paymentCount(t))
}

func TestBulk_ChargeCollectCancel(t *testing.T) {
	h := newHarness(t)
	creator := dbtest.User(t, h.db, "Admin", constants.RoleAdmin)
	g := dbtest.Group(t, h.db, "U12")
	for _, n := range []string{"Arda", "Kerem", "Yusuf", "Eren"} {
		dbtest.Student(t, h.db, n, "Oz", &g.GroupID, creator.ID)
	}
	reg := dbtest.FeeType(t, h.db, "Kayit", 1000, feeTypeModel.FeePeriodOneTime)
	tok := token(t, constants.RoleAccounting)

	code, out := h.call(t, "POST", "/api/payments/bulk", tok, map[string]any{"action": "refund"})
	assert.Equal(t, fiber.StatusBadRequest, code, out)

	code, out = h.call(t, "POST", "/api/payments/bulk", tok, map[string]any{
		"action": "bulk_charge", "feeTypeId": uuid.New(), "groupId": g.GroupID, "dueDate": "2025-06-01",
	})
	assert.Equal(t, fiber.StatusNotFound, code, out)

	code, out = h.call(t, "POST", "/api/payments/bulk", tok, map[string]any{
		"action": "bulk_charge", "feeTypeId": reg.FeeTypeID, "dueDate": "2025-06-01",
	})
	assert.Equal(t, fiber.StatusBadRequest, code, out)

	code, out = h.call(t, "POST", "/api/payments/bulk", tok, map[string]any{
		"action": "bulk_charge", "feeTypeId": reg.FeeTypeID, "groupId": g.GroupID, "dueDate": "2025-06-01",
	})
	require.Equal(t, fiber.StatusCreated, code, out)
	assert.EqualValues(t, 4, out["count"])
	charged := out["payments"].([]any)
	require.Len(t, charged, 4)
	for _, p := range charged {
		amt, err := decimal.NewFromString(jsonNumberString(p.(map[string]any)["amount"]))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1000).Equal(amt))
	}

	ids := []string{
		charged[0].(map[string]any)["id"].(string),
		charged[1].(map[string]any)["id"].(string),
		uuid.NewString(),
	}
	code, out = h.call(t, "POST", "/api/payments/bulk", tok, map[string]any{
		"action": "bulk_collect", "paymentIds": ids, "paymentMethod": "CASH",
	})
	require.Equal(t, fiber.StatusOK, code, out)
	assert.EqualValues(t, 2, out["count"])
	assert.Equal(t, "Successfully collected 2 payments", out["message"])
	assert.Len(t, out["skippedIds"], 1)

	code, out = h.call(t, "DELETE", "/api/payments?groupId="+g.GroupID.String(), tok, nil)
	require.Equal(t, fiber.StatusOK, code, out)
	assert.EqualValues(t, 2, out["count"])

	code, out = h.call(t, "DELETE", "/api/payments?groupId="+g.GroupID.String(), tok, nil)
	require.Equal(t, fiber.StatusOK, code, out)
	assert.EqualValues(t, 0, out["count"])

	code, out = h.call(t, "GET", "/api/payments?status=all", token(t, constants.RoleTrainer), nil)
	require.Equal(t, fiber.StatusOK, code, out)
	summary := out["summary"].(map[string]any)
	assert.EqualValues(t, 4, summary["count"])
	pagination := out["pagination"].(map[string]any)
	assert.EqualValues(t, 4, pagination["total"])
	assert.EqualValues(t, 1, pagination["pages"])

	code, out = h.call(t, "GET", "/api/payments", tok, nil)
	require.Equal(t, fiber.StatusOK, code, out)
	assert.Len(t, out["payments"], 2)
}

func TestList_QueryValidationAndDetail(t *testing.T) {
	h := newHarness(t)
	tok := token(t, constants.RoleSecretary)

	code, _ := h.call(t, "GET", "/api/payments?sortField=createdAt", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = h.call(t, "GET", "/api/payments?status=LATE", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = h.call(t, "GET", "/api/payments?groupId=nope", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = h.call(t, "DELETE", "/api/payments?status=LATE", token(t, constants.RoleAccounting), nil)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, out := h.call(t, "GET", "/api/payments?sortField=student.lastName&sortDirection=desc&overdue=true", tok, nil)
	require.Equal(t, fiber.StatusOK, code, out)
	assert.Contains(t, out, "summary")

	code, _ = h.call(t, "GET", "/api/payments/"+uuid.NewString(), tok, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	code, _ = h.call(t, "GET", "/api/payments/not-a-uuid", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestRecordAndUpdate_Endpoints(t *testing.T) {
	h := newHarness(t)
	creator := dbtest.User(t, h.db, "Admin", constants.RoleAdmin)
	s := dbtest.Student(t, h.db, "Emre", "Demir", nil, creator.ID)
	fee := dbtest.FeeType(t, h.db, "Aylik", 500, feeTypeModel.FeePeriodMonthly)
	tok := token(t, constants.RoleAdmin)

	code, out := h.call(t, "POST", "/api/payments", tok, map[string]any{
		"studentId": s.StudentID, "feeTypeId": fee.FeeTypeID, "amount": "500.00", "startDate": "2025-01-01",
	})
	require.Equal(t, fiber.StatusCreated, code, out)
	assert.Nil(t, out["planId"])
	id := out["payments"].([]any)[0].(map[string]any)["id"].(string)

	code, out = h.call(t, "POST", "/api/payments/"+id+"/record", tok, map[string]any{"amount": 200, "paymentMethod": "CASH"})
	require.Equal(t, fiber.StatusOK, code, out)
	assert.Equal(t, "PARTIAL", out["payment"].(map[string]any)["status"])

	code, out = h.call(t, "POST", "/api/payments/"+id+"/record", tok, map[string]any{"amount": 400})
	assert.Equal(t, fiber.StatusBadRequest, code, out)

	code, out = h.call(t, "PATCH", "/api/payments/"+id, tok, map[string]any{"amount": 200})
	require.Equal(t, fiber.StatusOK, code, out)
	assert.Equal(t, "PAID", out["payment"].(map[string]any)["status"])

	code, out = h.call(t, "PATCH", "/api/payments/"+id, tok, map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, code, out)

	code, out = h.call(t, "GET", "/api/payments/"+id, token(t, constants.RoleTrainer), nil)
	require.Equal(t, fiber.StatusOK, code, out)
	events := out["payment"].(map[string]any)["events"].([]any)
	assert.Len(t, events, 3)
}

// jsonNumberString: decimal bisa ter-encode sebagai string atau number.
func jsonNumberString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return decimal.NewFromFloat(x).String()
	default:
		return ""
	}
}
