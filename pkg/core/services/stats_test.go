package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rhallewell/wardroster/pkg/core/model"
)

func TestMonthStats_FromStoredSchedule(t *testing.T) {
	store := newMockStore()
	rules := wardRules()
	roster := wardRoster(3)

	store.schedules["2026-8"] = &model.Schedule{
		ID:    "run-1",
		Month: date(2026, time.September, 1),
		Shifts: []*model.ShiftInstance{
			{
				ID:            "shift-0-day-0",
				Date:          date(2026, time.September, 1),
				TypeIndex:     0,
				RequiredStaff: 3,
				AssignedStaff: []string{"s001", "s002"},
			},
			{
				ID:            "shift-1-day-0",
				Date:          date(2026, time.September, 1),
				TypeIndex:     1,
				RequiredStaff: 2,
				AssignedStaff: []string{"s003"},
			},
		},
		Rules:  *rules,
		Roster: roster,
	}

	stats, err := MonthStats(context.Background(), store, zap.NewNop(), date(2026, time.September, 1))
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, "s001", stats[0].StaffID)
	assert.Equal(t, 1, stats[0].TotalShifts)
	assert.Equal(t, []int{1, 0}, stats[0].ShiftsByType)
	assert.Equal(t, 12.0, stats[0].TotalHours)

	assert.Equal(t, []int{0, 1}, stats[2].ShiftsByType)
}

func TestMonthStats_NoScheduleStored(t *testing.T) {
	store := newMockStore()

	_, err := MonthStats(context.Background(), store, zap.NewNop(), date(2026, time.September, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schedule stored for month 2026-8")
}

func TestMonthStats_StoreError(t *testing.T) {
	store := newMockStore()
	store.getErr = fmt.Errorf("connection refused")

	_, err := MonthStats(context.Background(), store, zap.NewNop(), date(2026, time.September, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schedule")
}
