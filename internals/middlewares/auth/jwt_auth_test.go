package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futbolokulu_backend/internals/constants"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

const testSecret = "test-secret"

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims(id uuid.UUID, role constants.Role) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  id.String(),
		"name": "Ayse Yilmaz",
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func newApp(opts AuthJWTOpts) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(nil)})
	app.Get("/me", AuthJWT(opts), func(c *fiber.Ctx) error {
		id, _ := helperAuth.CurrentUser(c)
		return c.SendString(id.Name + "|" + string(id.Role))
	})
	app.Post("/payments", AuthJWT(opts), RequireManagePayments(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthJWT_Gate(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: testSecret})
	uid := uuid.New()

	expired := validClaims(uid, constants.RoleAdmin)
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	badRole := validClaims(uid, constants.RoleAdmin)
	badRole["role"] = "OWNER"

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token", "GET", "/me", "", 401},
		{"garbage", "GET", "/me", "abc.def.ghi", 401},
		{"wrong secret", "GET", "/me", sign(t, "other", validClaims(uid, constants.RoleAdmin)), 401},
		{"expired", "GET", "/me", sign(t, testSecret, expired), 401},
		{"unknown role", "GET", "/me", sign(t, testSecret, badRole), 401},
		{"ok", "GET", "/me", sign(t, testSecret, validClaims(uid, constants.RoleTrainer)), 200},
		{"trainer cannot manage payments", "POST", "/payments", sign(t, testSecret, validClaims(uid, constants.RoleTrainer)), 403},
		{"accounting can manage payments", "POST", "/payments", sign(t, testSecret, validClaims(uid, constants.RoleAccounting)), 201},
		{"no token on mutation", "POST", "/payments", "", 401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, app, tt.method, tt.path, tt.token))
		})
	}
}

func TestAuthJWT_CookieFallback(t *testing.T) {
	tok := sign(t, testSecret, validClaims(uuid.New(), constants.RoleAdmin))

	withCookie := func(app *fiber.App) int {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Cookie", "access_token="+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 401, withCookie(newApp(AuthJWTOpts{Secret: testSecret})))
	assert.Equal(t, 200, withCookie(newApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true})))
}

func TestAuthJWT_BlacklistAndInactiveUser(t *testing.T) {
	uid := uuid.New()
	tok := sign(t, testSecret, validClaims(uid, constants.RoleAdmin))

	blacklisted := newApp(AuthJWTOpts{
		Secret: testSecret,
		BlacklistChecker: func(_ context.Context, raw string) (bool, error) {
			return raw == tok, nil
		},
	})
	assert.Equal(t, 401, do(t, blacklisted, "GET", "/me", tok))

	inactive := newApp(AuthJWTOpts{
		Secret: testSecret,
		ActiveUserChecker: func(_ context.Context, id uuid.UUID) (bool, error) {
			return id != uid, nil
		},
	})
	assert.Equal(t, 401, do(t, inactive, "GET", "/me", tok))
}

func TestAuthJWT_IdentityLocals(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: testSecret})
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, testSecret, validClaims(uuid.New(), constants.RoleSecretary)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Ayse Yilmaz|SECRETARY", string(body))
}
