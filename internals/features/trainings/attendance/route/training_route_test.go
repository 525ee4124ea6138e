package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futbolokulu_backend/internals/constants"
	"futbolokulu_backend/internals/databases/dbtest"
	"futbolokulu_backend/internals/features/trainings/attendance/route"
	"futbolokulu_backend/internals/features/trainings/attendance/service"
	"futbolokulu_backend/internals/middlewares/auth/authtest"
)

func TestTrainings_Endpoints(t *testing.T) {
	db := dbtest.Open(t)
	app, api, authMw := authtest.App()
	route.TrainingRoutes(api, authMw, service.NewTrainingService(db, nil))

	coach := dbtest.User(t, db, "Hakan Hoca", constants.RoleTrainer)
	coachTok := authtest.Token(t, coach.ID, coach.Name, coach.Role)
	g := dbtest.Group(t, db, "U14")
	s := dbtest.Student(t, db, "Kerem", "Tas", &g.GroupID, coach.ID)

	body := map[string]any{"groupId": g.GroupID, "title": "Taktik", "startsAt": "2025-05-03T10:00:00Z", "durationMinutes": 75}
	code, _ := authtest.Call(t, app, "POST", "/api/trainings", authtest.AnyToken(t, constants.RoleAccounting), body)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, out := authtest.Call(t, app, "POST", "/api/trainings", coachTok, body)
	require.Equal(t, fiber.StatusCreated, code, out)
	data := out["data"].(map[string]any)
	id := data["id"].(string)
	assert.Equal(t, "2025-05-03T11:15:00Z", data["endsAt"])

	code, _ = authtest.Call(t, app, "POST", "/api/trainings", coachTok, map[string]any{"groupId": g.GroupID, "title": "x", "startsAt": "yarın"})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, out = authtest.Call(t, app, "PUT", "/api/trainings/"+id+"/attendance", coachTok, map[string]any{
		"entries": []map[string]any{{"studentId": s.StudentID, "status": "LATE", "note": "10 dk"}},
	})
	require.Equal(t, fiber.StatusOK, code, out)
	require.Len(t, out["data"].([]any), 1)

	code, out = authtest.Call(t, app, "GET", "/api/trainings/"+id, authtest.AnyToken(t, constants.RoleSecretary), nil)
	require.Equal(t, fiber.StatusOK, code, out)
	att := out["data"].(map[string]any)["attendance"].([]any)
	require.Len(t, att, 1)
	assert.Equal(t, "LATE", att[0].(map[string]any)["status"])

	code, out = authtest.Call(t, app, "GET", "/api/trainings?groupId="+g.GroupID.String()+"&from=2025-05-01&to=2025-05-03", coachTok, nil)
	require.Equal(t, fiber.StatusOK, code, out)
	assert.Len(t, out["data"].([]any), 1, "to is inclusive for whole days")

	code, _ = authtest.Call(t, app, "GET", "/api/trainings?from=2025-05-10&to=2025-05-01", coachTok, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
