// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	helper "futbolokulu_backend/internals/helpers"
	middlewares "futbolokulu_backend/internals/middlewares"
	authMiddleware "futbolokulu_backend/internals/middlewares/auth"
	accessLogger "futbolokulu_backend/internals/middlewares/logger"
	routeDetails "futbolokulu_backend/internals/route/details"
)

var startTime time.Time

// NewApp: fiber app + middleware standar + semua route.
func NewApp(d *Deps, fc fiber.Config) *fiber.App {
	fc.ErrorHandler = helper.ErrorHandler(d.Log)
	app := fiber.New(fc)

	app.Use(middlewares.RecoveryMiddleware(d.Log))
	app.Use(middlewares.RequestContext(d.Config.RequestTimeout))
	if !d.Config.IsProduction() {
		app.Use(accessLogger.LoggerMiddleware())
	}
	app.Use(middlewares.CorsMiddleware(d.Config.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	SetupRoutes(app, d)
	return app
}

// AuthMiddleware: JWT + blacklist + cek user aktif.
func AuthMiddleware(d *Deps) fiber.Handler {
	return authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              d.Config.JWTSecret,
		BlacklistChecker:    d.Auth.IsBlacklisted,
		ActiveUserChecker:   d.Auth.IsActiveUser,
		AllowCookieFallback: true,
	})
}

func SetupRoutes(app *fiber.App, d *Deps) {
	startTime = time.Now()

	BaseRoutes(app, d)

	api := app.Group("/api", middlewares.GlobalRateLimiter())
	authMw := AuthMiddleware(d)

	d.Log.Info("Setting up auth & user routes...")
	routeDetails.AuthRoutes(api, authMw, d.Auth, d.Users)

	d.Log.Info("Setting up school routes (groups, students, trainings)...")
	routeDetails.SchoolRoutes(api, authMw, d.DB, d.Students, d.Trainings)

	d.Log.Info("Setting up finance routes (fee types, payments)...")
	routeDetails.FinanceRoutes(api, authMw, d.DB, d.Ledger)

	d.Log.Info("Setting up notification routes...")
	routeDetails.NotificationRoutes(api, authMw, d.Dispatcher, d.Reminders)

	app.Use(func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusNotFound, "Route not found")
	})
	d.Log.Info("✅ routes ready", zap.Int("handlers", int(app.HandlersCount())))
}
