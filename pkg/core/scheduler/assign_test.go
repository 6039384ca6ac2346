package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhallewell/wardroster/pkg/core/model"
)

func TestAssignShift_FillsRequiredStaffInIDOrder(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{
		staffMember("s001"), staffMember("s002"), staffMember("s003"), staffMember("s004"),
	}
	shift := shiftOn("shift-0-day-9", date(2026, time.September, 10), 0)

	assigned := AssignShift(shift, roster, []*model.ShiftInstance{shift}, rules, date(2026, time.September, 1))

	// With no history every score ties, so the staff ID breaks all ties
	assert.Equal(t, []string{"s001", "s002"}, assigned)
	assert.Equal(t, assigned, shift.AssignedStaff)
}

func TestAssignShift_PrefersLargerHoursDeficit(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{staffMember("s001"), staffMember("s002")}

	// s001 has two prior shifts (24h), s002 none: a decisive 24h gap that
	// overrides s001's lower ID
	priors := []*model.ShiftInstance{
		shiftOn("p1", date(2026, time.September, 1), 0, "s001"),
		shiftOn("p2", date(2026, time.September, 3), 0, "s001"),
	}
	shift := shiftOn("shift-0-day-9", date(2026, time.September, 10), 0)
	shift.RequiredStaff = 1

	assigned := AssignShift(shift, roster, append(priors, shift), rules, date(2026, time.September, 1))

	assert.Equal(t, []string{"s002"}, assigned)
}

func TestAssignShift_SmallHoursGapFallsThrough(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{staffMember("s001"), staffMember("s002")}

	// One shift apart is a 12h gap, not decisive; both worked the candidate
	// type so type deficits tie too, and fewer total shifts wins
	priors := []*model.ShiftInstance{
		shiftOn("p1", date(2026, time.September, 1), 0, "s001", "s002"),
		shiftOn("p2", date(2026, time.September, 3), 0, "s001"),
	}
	shift := shiftOn("shift-0-day-9", date(2026, time.September, 10), 0)
	shift.RequiredStaff = 1

	assigned := AssignShift(shift, roster, append(priors, shift), rules, date(2026, time.September, 1))

	assert.Equal(t, []string{"s002"}, assigned)
}

func TestAssignShift_TypeDeficitBreaksHoursTie(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{staffMember("s001"), staffMember("s002")}

	// Equal hours, but s002 has only worked nights: it carries the larger
	// Day-type deficit and wins despite the higher ID
	priors := []*model.ShiftInstance{
		shiftOn("p1", date(2026, time.September, 6), 0, "s001"),
		shiftOn("p2", date(2026, time.September, 5), 1, "s002"),
	}
	shift := shiftOn("shift-0-day-9", date(2026, time.September, 10), 0)
	shift.RequiredStaff = 1

	assigned := AssignShift(shift, roster, append(priors, shift), rules, date(2026, time.September, 1))

	assert.Equal(t, []string{"s002"}, assigned)
}

func TestAssignShift_VarietyAvoidsRecentPair(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{
		staffMember("s001"), staffMember("s002"), staffMember("s003"),
	}

	// s001 and s002 worked together two days ago; s003 worked alone, so all
	// three carry identical fairness scores
	priors := []*model.ShiftInstance{
		shiftOn("p1", date(2026, time.September, 8), 0, "s001", "s002"),
		shiftOn("p2", date(2026, time.September, 7), 0, "s003"),
	}
	shift := shiftOn("shift-0-day-9", date(2026, time.September, 10), 0)

	assigned := AssignShift(shift, roster, append(priors, shift), rules, date(2026, time.September, 1))

	// First pick follows the ranking (s001); the second slot avoids the
	// familiar s001+s002 pairing
	assert.Equal(t, []string{"s001", "s003"}, assigned)
}

func TestAssignShift_PairOutsideWindowIgnored(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{
		staffMember("s001"), staffMember("s002"), staffMember("s003"),
	}

	// The s001+s002 pairing is 8 days back, outside the 7-day window; s003's
	// solo shift keeps the fairness scores level
	priors := []*model.ShiftInstance{
		shiftOn("p1", date(2026, time.September, 2), 0, "s001", "s002"),
		shiftOn("p2", date(2026, time.September, 2), 0, "s003"),
	}
	shift := shiftOn("shift-0-day-9", date(2026, time.September, 10), 0)

	assigned := AssignShift(shift, roster, append(priors, shift), rules, date(2026, time.September, 1))

	// The stale pairing triggers no avoidance, so plain ID order applies
	require.Len(t, assigned, 2)
	assert.Equal(t, []string{"s001", "s002"}, assigned)
}

func TestAssignShift_UnderfillIsNotAnError(t *testing.T) {
	rules := testRules()
	roster := []model.StaffMember{staffMember("s001")}
	shift := shiftOn("shift-0-day-9", date(2026, time.September, 10), 0)
	shift.RequiredStaff = 3

	assigned := AssignShift(shift, roster, []*model.ShiftInstance{shift}, rules, date(2026, time.September, 1))

	assert.Equal(t, []string{"s001"}, assigned)
}

func TestAssignShift_SkipsIneligibleStaff(t *testing.T) {
	rules := testRules()
	unavailable := staffMember("s001")
	unavailable.Unavailable = []model.Unavailability{{Date: date(2026, time.September, 10)}}
	roster := []model.StaffMember{unavailable, staffMember("s002"), staffMember("s003")}

	shift := shiftOn("shift-0-day-9", date(2026, time.September, 10), 0)

	assigned := AssignShift(shift, roster, []*model.ShiftInstance{shift}, rules, date(2026, time.September, 1))

	assert.Equal(t, []string{"s002", "s003"}, assigned)
}

func TestAssignShift_NoEligibleStaffLeavesShiftEmpty(t *testing.T) {
	rules := testRules()
	unavailable := staffMember("s001")
	unavailable.Unavailable = []model.Unavailability{{Date: date(2026, time.September, 10)}}

	shift := shiftOn("shift-0-day-9", date(2026, time.September, 10), 0)

	assigned := AssignShift(shift, []model.StaffMember{unavailable}, []*model.ShiftInstance{shift}, rules, date(2026, time.September, 1))

	assert.Empty(t, assigned)
	assert.NotNil(t, shift.AssignedStaff)
}

func TestTargetHoursForMonth(t *testing.T) {
	rules := testRules()

	// 30 active days at 36h/week
	assert.InDelta(t, 36.0*30/7, targetHoursForMonth(rules, date(2026, time.September, 1)), 0.001)

	// Weekdays only: September 2026 has 22 weekdays
	rules.ActiveWeekdays = model.WeekdayMask{false, true, true, true, true, true, false}
	assert.InDelta(t, 36.0*22/7, targetHoursForMonth(rules, date(2026, time.September, 1)), 0.001)
}
