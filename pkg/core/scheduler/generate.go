package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/rhallewell/wardroster/pkg/core/calendar"
	"github.com/rhallewell/wardroster/pkg/core/model"
)

// minLookbackDays is the floor on the prior-month lookback window.
const minLookbackDays = 7

// History maps month keys ("<year>-<zeroBasedMonth>") to stored schedules.
// It is owned by the caller and used only to supply lookback shifts across a
// month boundary; the generator never mutates it.
type History map[string]*model.Schedule

// Previous returns the schedule for the month before the given month, or nil.
func (h History) Previous(month time.Time) *model.Schedule {
	if h == nil {
		return nil
	}
	return h[calendar.MonthKey(calendar.PreviousMonth(month))]
}

// Put stores a schedule under its month key.
func (h History) Put(s *model.Schedule) {
	h[calendar.MonthKey(s.Month)] = s
}

// ValidateRules rejects structurally invalid rule sets so generation fails
// fast instead of producing a partially-garbage schedule.
func ValidateRules(rules *model.RuleSet) error {
	if len(rules.ShiftTypes) == 0 {
		return fmt.Errorf("rule set has no shift types")
	}
	if rules.TargetHoursPerWeek <= 0 {
		return fmt.Errorf("targetHoursPerWeek must be positive, got %v", rules.TargetHoursPerWeek)
	}
	if rules.ShiftDurationHours <= 0 {
		return fmt.Errorf("shiftDurationHours must be positive, got %v", rules.ShiftDurationHours)
	}
	for i, st := range rules.ShiftTypes {
		if st.RequiredStaff < 0 {
			return fmt.Errorf("shift type %d (%s): requiredStaff must not be negative", i, st.Label)
		}
		if st.MinDaysOff < 0 {
			return fmt.Errorf("shift type %d (%s): minDaysOff must not be negative", i, st.Label)
		}
		if st.MaxConsecutive < 0 {
			return fmt.Errorf("shift type %d (%s): maxConsecutive must not be negative", i, st.Label)
		}
		for _, other := range st.AllowSameDayWith {
			if other < 0 || other >= len(rules.ShiftTypes) {
				return fmt.Errorf("shift type %d (%s): allowSameDayWith references type index %d out of range", i, st.Label, other)
			}
		}
	}
	return nil
}

// Generate builds the complete schedule for a month: it enumerates shift
// instances from the rules, pulls lookback shifts from the prior month's
// schedule in history, and assigns staff shift by shift in ascending date
// then type-index order.
//
// Generate is a pure function of its inputs; persisting the result into
// history is the caller's responsibility.
func Generate(month time.Time, roster []model.StaffMember, rules *model.RuleSet, history History) (*model.Schedule, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}

	monthStart := calendar.MonthStart(month)

	// Enumerate instances: one per active (day, type) combination
	var shifts []*model.ShiftInstance
	for dayIndex, day := range calendar.MonthDays(monthStart) {
		for typeIndex := range rules.ShiftTypes {
			mask := rules.ActiveMaskFor(typeIndex)
			if !mask.Active(day.Weekday()) {
				continue
			}
			shifts = append(shifts, &model.ShiftInstance{
				ID:            fmt.Sprintf("shift-%d-day-%d", typeIndex, dayIndex),
				Date:          day,
				TypeIndex:     typeIndex,
				RequiredStaff: rules.ShiftTypes[typeIndex].RequiredStaff,
				AssignedStaff: []string{},
			})
		}
	}

	// Trailing slice of the previous month for cross-boundary constraint checks
	lookback := lookbackShifts(monthStart, history)

	allShifts := make([]*model.ShiftInstance, 0, len(lookback)+len(shifts))
	allShifts = append(allShifts, lookback...)
	allShifts = append(allShifts, shifts...)

	// Stable roster order keeps tie-breaks reproducible
	sortedRoster := make([]model.StaffMember, len(roster))
	copy(sortedRoster, roster)
	sort.Slice(sortedRoster, func(i, j int) bool { return sortedRoster[i].ID < sortedRoster[j].ID })

	for _, shift := range shifts {
		AssignShift(shift, sortedRoster, allShifts, rules, monthStart)
	}

	return &model.Schedule{
		Month:  monthStart,
		Shifts: shifts,
		Rules:  *rules,
		Roster: roster,
	}, nil
}

// lookbackShifts returns the trailing slice of the previous month's schedule
// needed to evaluate rest and consecutive rules across the month boundary.
// The window is max(minLookbackDays, max MinDaysOff over the previous rules).
func lookbackShifts(monthStart time.Time, history History) []*model.ShiftInstance {
	prev := history.Previous(monthStart)
	if prev == nil {
		return nil
	}

	window := minLookbackDays
	for _, st := range prev.Rules.ShiftTypes {
		if st.MinDaysOff > window {
			window = st.MinDaysOff
		}
	}

	cutoff := calendar.AddDays(calendar.MonthEnd(prev.Month), -window)
	var trailing []*model.ShiftInstance
	for _, s := range prev.Shifts {
		if !s.Date.Before(cutoff) {
			trailing = append(trailing, s)
		}
	}
	return trailing
}
