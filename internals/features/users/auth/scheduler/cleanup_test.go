package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futbolokulu_backend/internals/databases/dbtest"
	"futbolokulu_backend/internals/features/users/auth/model"
	"futbolokulu_backend/internals/features/users/auth/scheduler"
)

func TestCleanupBlacklist_RemovesOnlyExpired(t *testing.T) {
	db := dbtest.Open(t)
	now := time.Now().UTC()
	require.NoError(t, db.Create(&[]model.TokenBlacklist{
		{TokenHash: "old", ExpiredAt: now.Add(-48 * time.Hour)},
		{TokenHash: "fresh", ExpiredAt: now.Add(time.Hour)},
	}).Error)

	n, err := scheduler.CleanupBlacklist(context.Background(), db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left []model.TokenBlacklist
	require.NoError(t, db.Unscoped().Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "fresh", left[0].TokenHash)
}

func TestStartBlacklistCleanupScheduler(t *testing.T) {
	db := dbtest.Open(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := scheduler.StartBlacklistCleanupScheduler(ctx, db, nil, 1, "not a schedule")
	assert.Error(t, err)

	c, err := scheduler.StartBlacklistCleanupScheduler(ctx, db, nil, 0, "")
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	assert.False(t, c.Entries()[0].Next.IsZero())
}
