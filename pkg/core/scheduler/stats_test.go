package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhallewell/wardroster/pkg/core/model"
)

func TestComputeStats_Aggregates(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{staffMember("s001"), staffMember("s002")}

	shifts := []*model.ShiftInstance{
		shiftOn("shift-0-day-0", date(2026, time.September, 1), 0, "s001"),
		shiftOn("shift-0-day-1", date(2026, time.September, 2), 0, "s001", "s002"),
		shiftOn("shift-1-day-3", date(2026, time.September, 4), 1, "s001"),
	}

	stats := ComputeStats(roster, shifts, rules, date(2026, time.September, 1))
	require.Len(t, stats, 2)

	s1 := stats[0]
	assert.Equal(t, "s001", s1.StaffID)
	assert.Equal(t, 3, s1.TotalShifts)
	assert.Equal(t, []int{2, 1}, s1.ShiftsByType)
	assert.Equal(t, 36.0, s1.TotalHours)
	// September 2026 spans 5 schedule weeks
	assert.InDelta(t, 7.2, s1.AverageHoursPerWeek, 0.001)
	assert.Equal(t, 2, s1.LongestStreak)
	assert.Equal(t, 3, s1.DaysWorked)

	s2 := stats[1]
	assert.Equal(t, "s002", s2.StaffID)
	assert.Equal(t, 1, s2.TotalShifts)
	assert.Equal(t, []int{1, 0}, s2.ShiftsByType)
	assert.Equal(t, 12.0, s2.TotalHours)
	assert.Equal(t, 1, s2.LongestStreak)
	assert.Equal(t, 1, s2.DaysWorked)
}

func TestComputeStats_ZeroShiftEntry(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{staffMember("s001")}

	stats := ComputeStats(roster, nil, rules, date(2026, time.September, 1))
	require.Len(t, stats, 1)

	assert.Equal(t, 0, stats[0].TotalShifts)
	assert.Equal(t, []int{0, 0}, stats[0].ShiftsByType)
	assert.Equal(t, 0.0, stats[0].TotalHours)
	assert.Equal(t, 0, stats[0].LongestStreak)
	assert.Equal(t, 0, stats[0].DaysWorked)
}

func TestComputeStats_SameDayDoubleCountsOnceForStreaks(t *testing.T) {
	rules := testRules()
	rules.ShiftTypes[0].AllowSameDayWith = []int{1}
	roster := []model.StaffMember{staffMember("s001")}

	// A day+night double on the 3rd followed by a day on the 4th: three
	// shifts but only two worked days and a streak of two
	shifts := []*model.ShiftInstance{
		shiftOn("shift-0-day-2", date(2026, time.September, 3), 0, "s001"),
		shiftOn("shift-1-day-2", date(2026, time.September, 3), 1, "s001"),
		shiftOn("shift-0-day-3", date(2026, time.September, 4), 0, "s001"),
	}

	stats := ComputeStats(roster, shifts, rules, date(2026, time.September, 1))
	require.Len(t, stats, 1)

	assert.Equal(t, 3, stats[0].TotalShifts)
	assert.Equal(t, 36.0, stats[0].TotalHours)
	assert.Equal(t, 2, stats[0].DaysWorked)
	assert.Equal(t, 2, stats[0].LongestStreak)
}

func TestComputeStats_StreakResetByGap(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{staffMember("s001")}

	shifts := []*model.ShiftInstance{
		shiftOn("a", date(2026, time.September, 1), 0, "s001"),
		shiftOn("b", date(2026, time.September, 2), 0, "s001"),
		shiftOn("c", date(2026, time.September, 3), 0, "s001"),
		shiftOn("d", date(2026, time.September, 5), 0, "s001"),
		shiftOn("e", date(2026, time.September, 6), 0, "s001"),
	}

	stats := ComputeStats(roster, shifts, rules, date(2026, time.September, 1))
	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].LongestStreak)
	assert.Equal(t, 5, stats[0].DaysWorked)
}

func TestComputeStats_EntriesFollowRosterOrder(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{staffMember("s003"), staffMember("s001"), staffMember("s002")}

	stats := ComputeStats(roster, nil, rules, date(2026, time.September, 1))
	require.Len(t, stats, 3)
	assert.Equal(t, "s003", stats[0].StaffID)
	assert.Equal(t, "s001", stats[1].StaffID)
	assert.Equal(t, "s002", stats[2].StaffID)
}
