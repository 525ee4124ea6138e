package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttendanceStatus(t *testing.T) {
	st, err := ParseAttendanceStatus(" late ")
	require.NoError(t, err)
	assert.Equal(t, AttendanceLate, st)

	_, err = ParseAttendanceStatus("HOLIDAY")
	assert.Error(t, err)
}

func TestTraining_EndsAt(t *testing.T) {
	start := time.Date(2025, 4, 1, 17, 0, 0, 0, time.UTC)
	tr := Training{TrainingStartsAt: start, TrainingDurationMinutes: 90}
	assert.Equal(t, start.Add(90*time.Minute), tr.EndsAt())
}
