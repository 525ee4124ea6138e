package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"futbolokulu_backend/internals/configs"
	database "futbolokulu_backend/internals/databases"
	scheduler "futbolokulu_backend/internals/features/users/auth/scheduler"
	routes "futbolokulu_backend/internals/route"
	"futbolokulu_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	cfg, err := configs.Load(nil)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// angka uang keluar sebagai number JSON, bukan string
	decimal.MarshalJSONWithoutQuotes = true

	// 🔌 DB connect + pool + migrate
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	if err := database.TunePool(db); err != nil {
		logger.Fatal("db pool", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	deps := routes.NewDeps(cfg, db, logger)

	// 👤 admin pertama dari ENV (hanya kalau tabel users kosong)
	if email := configs.GetEnv("ADMIN_EMAIL"); email != "" {
		created, err := deps.Users.EnsureAdmin(context.Background(),
			configs.GetEnv("ADMIN_NAME", "Admin"), email, configs.GetEnv("ADMIN_PASSWORD"))
		if err != nil {
			logger.Fatal("ensure admin", zap.Error(err))
		}
		if created {
			logger.Info("👤 admin user created", zap.String("email", email))
		}
	}

	// 🌱 data referensi (SEED_DATA_DIR=internals/seeds/data)
	if dir := configs.GetEnv("SEED_DATA_DIR"); dir != "" {
		if err := seeds.RunAllSeeds(db, logger, dir); err != nil {
			logger.Fatal("seed", zap.Error(err))
		}
	}

	// ⏱ scheduler setelah DB siap
	bgCtx, stopBg := context.WithCancel(context.Background())
	defer stopBg()
	if _, err := scheduler.StartBlacklistCleanupScheduler(bgCtx, db, logger, cfg.BlacklistTTLDays,
		configs.GetEnv("TOKEN_CLEANUP_CRON", scheduler.DefaultCleanupSchedule)); err != nil {
		logger.Fatal("cleanup scheduler", zap.Error(err))
	}

	app := routes.NewApp(deps, fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	// Start server non-blocking
	go func() {
		logger.Info("✅ Listening", zap.String("port", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown: stop HTTP, tunggu notifikasi in-flight, tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("🛑 shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	stopBg()
	deps.Dispatcher.Wait()

	if err := database.Close(db); err != nil {
		logger.Warn("db close", zap.Error(err))
	}
}
