package scheduler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"futbolokulu_backend/internals/features/users/auth/model"
)

// CleanupBlacklist menghapus (hard delete) token yang expired sebelum `before`.
func CleanupBlacklist(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	res := db.WithContext(ctx).Unscoped().
		Where("expired_at < ?", before).
		Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}

// DefaultCleanupSchedule: tiap hari jam 03:00 UTC.
const DefaultCleanupSchedule = "0 3 * * *"

// StartBlacklistCleanupScheduler: sekali saat start, lalu sesuai jadwal cron sampai ctx dibatalkan.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB, log *zap.Logger, ttlDays int, schedule string) (*cron.Cron, error) {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}
	if log == nil {
		log = zap.NewNop()
	}

	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		deleteBefore := time.Now().UTC().Add(-time.Duration(ttlDays) * 24 * time.Hour)
		n, err := CleanupBlacklist(runCtx, db, deleteBefore)
		if err != nil {
			log.Error("[CLEANUP] token_blacklist gagal", zap.Error(err))
		} else if n > 0 {
			log.Info("[CLEANUP] token kadaluarsa dihapus", zap.Int64("count", n))
		}
	}

	c := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, run); err != nil {
		return nil, errors.Wrapf(err, "cleanup schedule %q", schedule)
	}

	go run()
	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	log.Info("[CLEANUP] scheduler started", zap.String("schedule", schedule), zap.Int("ttl_days", ttlDays))
	return c, nil
}
