// Package scheduler implements the ward scheduling core: eligibility
// checking, greedy fairness-ranked assignment, month generation, and
// per-staff statistics. Generation is a deterministic, in-memory computation;
// callers must not run it for the same month from multiple goroutines since
// the cumulative shift set is mutated in place during a pass.
package scheduler

import (
	"fmt"
	"time"

	"github.com/rhallewell/wardroster/pkg/core/calendar"
	"github.com/rhallewell/wardroster/pkg/core/model"
)

// CanAssign decides whether a staff member may be assigned to a shift
// instance under the given rules. allShifts must contain every instance the
// roster has been assigned to that is relevant to the decision: the current
// month so far plus enough trailing prior-month instances to satisfy the
// longest MinDaysOff lookback (minimum 7 days).
//
// Checks run in order and the first failure wins. An ineligible result is a
// normal outcome, not an error; the reason is purely diagnostic.
func CanAssign(staff model.StaffMember, shift *model.ShiftInstance, allShifts []*model.ShiftInstance, rules *model.RuleSet) model.EligibilityResult {
	// 1. Absolute unavailability
	for _, u := range staff.Unavailable {
		if calendar.SameDay(u.Date, shift.Date) {
			return ineligible("staff member is unavailable on this date")
		}
	}

	// 2. Idempotence guard against double-booking the same instance
	if shift.HasStaff(staff.ID) {
		return ineligible("already assigned to this shift")
	}

	if shift.TypeIndex < 0 || shift.TypeIndex >= len(rules.ShiftTypes) {
		return ineligible(fmt.Sprintf("shift type index %d out of range", shift.TypeIndex))
	}
	shiftType := &rules.ShiftTypes[shift.TypeIndex]

	// 3. Same-day combination: any other shift held on this date must list
	// the candidate type in its AllowSameDayWith set
	for _, other := range allShifts {
		if other.ID == shift.ID || !calendar.SameDay(other.Date, shift.Date) || !other.HasStaff(staff.ID) {
			continue
		}
		if other.TypeIndex < 0 || other.TypeIndex >= len(rules.ShiftTypes) {
			return ineligible(fmt.Sprintf("existing same-day shift references type index %d out of range", other.TypeIndex))
		}
		existingType := &rules.ShiftTypes[other.TypeIndex]
		if !existingType.AllowsSameDay(shift.TypeIndex) {
			return ineligible(fmt.Sprintf("same-day shifts not allowed: %s + %s", existingType.Label, shiftType.Label))
		}
	}

	// 4. Minimum rest after each shift type
	for typeIndex := range rules.ShiftTypes {
		prevType := &rules.ShiftTypes[typeIndex]
		if prevType.MinDaysOff <= 0 {
			continue
		}
		for daysAgo := 1; daysAgo <= prevType.MinDaysOff; daysAgo++ {
			checkDate := calendar.AddDays(shift.Date, -daysAgo)
			if workedTypeOn(staff.ID, typeIndex, checkDate, allShifts) {
				return ineligible(fmt.Sprintf(
					"minimum %d day(s) off required after %s (worked %d day(s) ago)",
					prevType.MinDaysOff, prevType.Label, daysAgo))
			}
		}
	}

	// 5. Consecutive-type cap
	yesterday := calendar.AddDays(shift.Date, -1)
	if shiftType.MaxConsecutive == 0 {
		if workedTypeOn(staff.ID, shift.TypeIndex, yesterday, allShifts) {
			return ineligible(fmt.Sprintf("consecutive %s shifts not allowed", shiftType.Label))
		}
	} else {
		run := consecutiveRunEndingOn(staff.ID, shift.TypeIndex, yesterday, allShifts)
		if run >= shiftType.MaxConsecutive {
			return ineligible(fmt.Sprintf("maximum %d consecutive %s shifts reached", shiftType.MaxConsecutive, shiftType.Label))
		}
	}

	return model.EligibilityResult{Eligible: true}
}

func ineligible(reason string) model.EligibilityResult {
	return model.EligibilityResult{Eligible: false, Reason: reason}
}

// workedTypeOn reports whether the staff member is assigned to a shift of the
// given type on the given date.
func workedTypeOn(staffID string, typeIndex int, date time.Time, allShifts []*model.ShiftInstance) bool {
	for _, s := range allShifts {
		if s.TypeIndex == typeIndex && calendar.SameDay(s.Date, date) && s.HasStaff(staffID) {
			return true
		}
	}
	return false
}

// consecutiveRunEndingOn counts the unbroken run of same-type assignments
// ending on endDate, walking backward day by day until a gap is found.
func consecutiveRunEndingOn(staffID string, typeIndex int, endDate time.Time, allShifts []*model.ShiftInstance) int {
	count := 0
	for d := endDate; workedTypeOn(staffID, typeIndex, d, allShifts); d = calendar.AddDays(d, -1) {
		count++
	}
	return count
}

// HoursWorked returns the total hours the staff member has accumulated across
// the given shifts. Every assignment counts the uniform shift duration; a
// same-day double counts twice.
func HoursWorked(staffID string, shifts []*model.ShiftInstance, hoursPerShift float64) float64 {
	count := 0
	for _, s := range shifts {
		if s.HasStaff(staffID) {
			count++
		}
	}
	return float64(count) * hoursPerShift
}
