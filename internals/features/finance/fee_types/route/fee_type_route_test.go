package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futbolokulu_backend/internals/constants"
	"futbolokulu_backend/internals/databases/dbtest"
	model "futbolokulu_backend/internals/features/finance/fee_types/model"
	"futbolokulu_backend/internals/features/finance/fee_types/route"
	"futbolokulu_backend/internals/middlewares/auth/authtest"
)

func TestFeeTypes_CreateAndList(t *testing.T) {
	db := dbtest.Open(t)
	app, api, authMw := authtest.App()
	route.FeeTypeRoutes(api, authMw, db)

	g := dbtest.Group(t, db, "U12")
	other := dbtest.Group(t, db, "U14")
	dbtest.FeeType(t, db, "Kayit", 1000, model.FeePeriodOneTime)
	acc := authtest.AnyToken(t, constants.RoleAccounting)

	code, _ := authtest.Call(t, app, "POST", "/api/fee-types", authtest.AnyToken(t, constants.RoleTrainer),
		map[string]any{"name": "Aylik", "amount": 500, "period": "MONTHLY"})
	assert.Equal(t, fiber.StatusForbidden, code)

	code, out := authtest.Call(t, app, "POST", "/api/fee-types", acc,
		map[string]any{"name": "U12 Aylik", "amount": 500, "period": "monthly", "groupId": g.GroupID})
	require.Equal(t, fiber.StatusCreated, code, out)
	data := out["data"].(map[string]any)
	assert.Equal(t, "MONTHLY", data["period"])

	authtest.Call(t, app, "POST", "/api/fee-types", acc,
		map[string]any{"name": "U14 Aylik", "amount": 450, "period": "MONTHLY", "groupId": other.GroupID})

	code, out = authtest.Call(t, app, "GET", "/api/fee-types?groupId="+g.GroupID.String(), acc, nil)
	require.Equal(t, fiber.StatusOK, code, out)
	names := []string{}
	for _, r := range out["data"].([]any) {
		names = append(names, r.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{"Kayit", "U12 Aylik"}, names)
}

func TestFeeTypes_CreateValidation(t *testing.T) {
	db := dbtest.Open(t)
	app, api, authMw := authtest.App()
	route.FeeTypeRoutes(api, authMw, db)
	tok := authtest.AnyToken(t, constants.RoleAdmin)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"blank name", map[string]any{"name": "  ", "amount": 10, "period": "MONTHLY"}, 400},
		{"no amount", map[string]any{"name": "X", "period": "MONTHLY"}, 400},
		{"negative amount", map[string]any{"name": "X", "amount": -5, "period": "MONTHLY"}, 400},
		{"bad period", map[string]any{"name": "X", "amount": 10, "period": "WEEKLY"}, 400},
		{"unknown group", map[string]any{"name": "X", "amount": 10, "period": "YEARLY", "groupId": uuid.New()}, 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := authtest.Call(t, app, "POST", "/api/fee-types", tok, tt.body)
			assert.Equal(t, tt.want, code, out)
		})
	}
}
