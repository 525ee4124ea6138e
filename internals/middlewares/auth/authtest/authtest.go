// Package authtest: token & app helper untuk test route yang dilindungi AuthJWT.
package authtest

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
	"github.com/stretchr/testify/require"

	"futbolokulu_backend/internals/constants"
	helper "futbolokulu_backend/internals/helpers"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
)

const Secret = "authtest-secret"

// App: fiber app dengan error handler standar, group /api, dan middleware AuthJWT.
func App() (*fiber.App, fiber.Router, fiber.Handler) {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(nil)})
	return app, app.Group("/api"), authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{Secret: Secret})
}

func Token(t testing.TB, userID uuid.UUID, name string, role constants.Role) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"name": name,
		"role": string(role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(Secret))
	require.NoError(t, err)
	return s
}

// AnyToken: user acak dengan role tertentu.
func AnyToken(t testing.TB, role constants.Role) string {
	return Token(t, uuid.New(), "Test "+string(role), role)
}

// Call mengirim request JSON dan mengembalikan status + body ter-decode.
func Call(t testing.TB, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
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
