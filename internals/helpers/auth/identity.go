package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"futbolokulu_backend/internals/constants"
)

// Nama locals yang diisi middleware AuthJWT
const (
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocRole     = "role"
	LocIdentity = "identity"
	LocRawToken = "raw_token"
	LocTokenExp = "token_exp"
)

// Identity: user yang sedang login (hasil verifikasi token).
type Identity struct {
	UserID uuid.UUID      `json:"userId"`
	Name   string         `json:"name"`
	Role   constants.Role `json:"role"`
}

func SetIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(LocIdentity, id)
	c.Locals(LocUserID, id.UserID.String())
	c.Locals(LocUserName, id.Name)
	c.Locals(LocRole, string(id.Role))
}

// CurrentUser: false kalau request belum lewat AuthJWT.
func CurrentUser(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(LocIdentity).(Identity)
	return id, ok && id.UserID != uuid.Nil
}

// RawAccessToken: Authorization: Bearer ... atau cookie access_token.
func RawAccessToken(c *fiber.Ctx, allowCookie bool) string {
	authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.Trim(strings.TrimSpace(authz[7:]), "\"'")
	}
	if allowCookie {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}

// TokenHash: token tidak disimpan mentah di blacklist.
func TokenHash(rawToken, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(rawToken))
	return hex.EncodeToString(m.Sum(nil))
}
