package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeePeriod_MonthsInterval(t *testing.T) {
	tests := []struct {
		period FeePeriod
		want   int
	}{
		{FeePeriodMonthly, 1},
		{FeePeriodQuarterly, 3},
		{FeePeriodYearly, 12},
		{FeePeriodOneTime, 1},
		{FeePeriod(""), 1},
		{FeePeriod("WEEKLY"), 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.MonthsInterval())
		})
	}
}

func TestFeePeriod_Valid(t *testing.T) {
	assert.True(t, FeePeriodQuarterly.Valid())
	assert.False(t, FeePeriod("WEEKLY").Valid())
}
