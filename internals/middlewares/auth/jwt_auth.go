package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"futbolokulu_backend/internals/constants"
	helper "futbolokulu_backend/internals/helpers"
	helperAuth "futbolokulu_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(ctx context.Context, rawToken string) (bool, error) // true = sudah logout
	ActiveUserChecker   func(ctx context.Context, userID uuid.UUID) (bool, error) // false = user hilang / nonaktif
	AllowCookieFallback bool                                                      // pakai cookie access_token jika tidak ada Bearer
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := helperAuth.RawAccessToken(c, o.AllowCookieFallback)
		if raw == "" {
			return helper.ErrUnauthenticated("Unauthorized")
		}

		// 2) Parse + verifikasi algoritma (exp divalidasi oleh jwt)
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, helper.ErrUnauthenticated("Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return helper.ErrUnauthenticated("Invalid token")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return helper.ErrUnauthenticated("Invalid token claims")
		}

		// 3) Klaim wajib: sub (uuid) + role (enum)
		userID, err := uuid.Parse(strClaim(claims, "sub"))
		if err != nil {
			return helper.ErrUnauthenticated("Invalid token subject")
		}
		role, err := constants.ParseRole(strClaim(claims, "role"))
		if err != nil {
			return helper.ErrUnauthenticated("Invalid token role")
		}

		ctx := c.UserContext()

		// 4) Cek blacklist (opsional)
		if o.BlacklistChecker != nil {
			black, err := o.BlacklistChecker(ctx, raw)
			if err != nil {
				return err
			}
			if black {
				return helper.ErrUnauthenticated("Token revoked")
			}
		}

		// 5) User masih aktif? (opsional)
		if o.ActiveUserChecker != nil {
			active, err := o.ActiveUserChecker(ctx, userID)
			if err != nil {
				return err
			}
			if !active {
				return helper.ErrUnauthenticated("User not found or disabled")
			}
		}

		helperAuth.SetIdentity(c, helperAuth.Identity{
			UserID: userID,
			Name:   strClaim(claims, "name"),
			Role:   role,
		})
		c.Locals(helperAuth.LocRawToken, raw)
		if exp, ok := claims["exp"].(float64); ok {
			c.Locals(helperAuth.LocTokenExp, time.Unix(int64(exp), 0).UTC())
		}

		return c.Next()
	}
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
