package scheduler

import (
	"sort"
	"time"

	"github.com/rhallewell/wardroster/pkg/core/calendar"
	"github.com/rhallewell/wardroster/pkg/core/model"
)

// Decisive gaps for the fairness sort: smaller differences fall through to
// the next criterion instead of deciding the order.
const (
	hoursDeficitDecisiveGap = 12 // more than one shift's worth of hours
	typeDeficitDecisiveGap  = 3
)

// newStaffTypeDeficit is the flat deficit bonus for staff with zero prior
// shifts, giving a slight preference to spreading onboarding.
const newStaffTypeDeficit = 10

// varietyLookbackDays is the trailing window used to build the pair-frequency
// table for variety selection.
const varietyLookbackDays = 7

// candidate carries the fairness scores computed for one staff member when
// ranking them for a shift.
type candidate struct {
	staff        model.StaffMember
	hoursDeficit float64
	typeDeficit  float64
	totalShifts  int
}

// AssignShift selects staff for a single shift instance and writes the result
// into its AssignedStaff list. Called once per instance in ascending date then
// type-index order; allShifts is the cumulative set mutated as generation
// proceeds, so later shifts see earlier-in-month assignments.
//
// Running out of eligible staff is not an error: the shift is simply left
// with fewer than RequiredStaff members.
func AssignShift(shift *model.ShiftInstance, roster []model.StaffMember, allShifts []*model.ShiftInstance, rules *model.RuleSet, month time.Time) []string {
	targetHours := targetHoursForMonth(rules, month)
	recentShifts := shiftsInWindow(allShifts, shift.Date, varietyLookbackDays)

	eligible := rankEligibleStaff(shift, roster, allShifts, rules, targetHours)

	picked := selectWithVariety(eligible, shift.RequiredStaff, recentShifts)

	assigned := make([]string, 0, len(picked))
	for _, c := range picked {
		assigned = append(assigned, c.staff.ID)
	}
	shift.AssignedStaff = assigned
	return assigned
}

// targetHoursForMonth prorates the weekly hours target over the month's
// active days.
func targetHoursForMonth(rules *model.RuleSet, month time.Time) float64 {
	activeDays := 0
	for _, day := range calendar.MonthDays(month) {
		if rules.ActiveWeekdays.Active(day.Weekday()) {
			activeDays++
		}
	}
	return rules.TargetHoursPerWeek * float64(activeDays) / 7
}

// rankEligibleStaff filters the roster through CanAssign and sorts the
// survivors by the fairness criteria. Each criterion only breaks ties left by
// the previous one; the staff ID comparison makes the order fully
// deterministic.
func rankEligibleStaff(shift *model.ShiftInstance, roster []model.StaffMember, allShifts []*model.ShiftInstance, rules *model.RuleSet, targetHours float64) []candidate {
	totalRequired := rules.TotalRequiredStaff()

	var eligible []candidate
	for _, staff := range roster {
		if result := CanAssign(staff, shift, allShifts, rules); !result.Eligible {
			continue
		}

		totalShifts := 0
		typeCount := 0
		for _, s := range allShifts {
			if !s.HasStaff(staff.ID) {
				continue
			}
			totalShifts++
			if s.TypeIndex == shift.TypeIndex {
				typeCount++
			}
		}
		currentHours := float64(totalShifts) * rules.ShiftDurationHours

		// Prefer staff who have done proportionally fewer of this type
		typeDeficit := float64(newStaffTypeDeficit)
		if totalShifts > 0 && totalRequired > 0 {
			idealRatio := float64(rules.ShiftTypes[shift.TypeIndex].RequiredStaff) / float64(totalRequired)
			currentRatio := float64(typeCount) / float64(totalShifts)
			typeDeficit = (idealRatio - currentRatio) * 100
		}

		eligible = append(eligible, candidate{
			staff:        staff,
			hoursDeficit: targetHours - currentHours,
			typeDeficit:  typeDeficit,
			totalShifts:  totalShifts,
		})
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]

		if diff := a.hoursDeficit - b.hoursDeficit; diff > hoursDeficitDecisiveGap || diff < -hoursDeficitDecisiveGap {
			return diff > 0
		}
		if diff := a.typeDeficit - b.typeDeficit; diff > typeDeficitDecisiveGap || diff < -typeDeficitDecisiveGap {
			return diff > 0
		}
		if a.totalShifts != b.totalShifts {
			return a.totalShifts < b.totalShifts
		}
		return a.staff.ID < b.staff.ID
	})

	return eligible
}

// shiftsInWindow returns shifts strictly before beforeDate and within the
// given number of trailing days.
func shiftsInWindow(allShifts []*model.ShiftInstance, beforeDate time.Time, days int) []*model.ShiftInstance {
	cutoff := calendar.AddDays(beforeDate, -days)
	var recent []*model.ShiftInstance
	for _, s := range allShifts {
		if !s.Date.Before(cutoff) && s.Date.Before(beforeDate) {
			recent = append(recent, s)
		}
	}
	return recent
}

// pairKey builds the unordered-pair key for two staff IDs.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// selectWithVariety picks the required number of candidates from the ranked
// list, avoiding combinations that have recently worked together. The first
// pick is the highest-priority candidate; each subsequent slot goes to the
// remaining candidate least familiar with those already selected, ties broken
// by the original sort order.
func selectWithVariety(ranked []candidate, required int, recentShifts []*model.ShiftInstance) []candidate {
	if len(ranked) <= required {
		return ranked
	}

	// Pair-frequency table over the trailing window
	pairCounts := make(map[string]int)
	for _, s := range recentShifts {
		ids := s.AssignedStaff
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				pairCounts[pairKey(ids[i], ids[j])]++
			}
		}
	}

	selected := []candidate{ranked[0]}
	remaining := make([]candidate, len(ranked)-1)
	copy(remaining, ranked[1:])

	for len(selected) < required && len(remaining) > 0 {
		bestIndex := 0
		lowestScore := -1
		for i, c := range remaining {
			score := 0
			for _, chosen := range selected {
				score += pairCounts[pairKey(c.staff.ID, chosen.staff.ID)]
			}
			if lowestScore < 0 || score < lowestScore {
				lowestScore = score
				bestIndex = i
			}
		}
		selected = append(selected, remaining[bestIndex])
		remaining = append(remaining[:bestIndex], remaining[bestIndex+1:]...)
	}

	return selected
}
