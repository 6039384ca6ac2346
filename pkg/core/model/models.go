package model

import (
	"slices"
	"time"
)

// WeekdayMask marks which days of the week are active, Sunday-first
// (index 0 = Sunday, 6 = Saturday).
type WeekdayMask [7]bool

// AllDays returns a mask with every weekday active.
func AllDays() WeekdayMask {
	return WeekdayMask{true, true, true, true, true, true, true}
}

// Active reports whether the given weekday is active in the mask.
func (m WeekdayMask) Active(d time.Weekday) bool {
	return m[int(d)]
}

// ShiftType is one recurring category of work period (e.g. "Day", "Night").
// Types are defined once per rule set and referenced by their position in
// RuleSet.ShiftTypes, never by label.
type ShiftType struct {
	Label        string `json:"label" yaml:"label"`
	Abbreviation string `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`

	// StartTime and EndTime are times of day in "HH:MM" format
	StartTime string `json:"startTime" yaml:"startTime"`
	EndTime   string `json:"endTime" yaml:"endTime"`

	// RequiredStaff is the number of staff needed on each instance of this type
	RequiredStaff int `json:"requiredStaff" yaml:"requiredStaff"`

	// DayAfterLabel is an optional marker shown on the day following this
	// shift (e.g. "R" for recovery)
	DayAfterLabel string `json:"dayAfterLabel,omitempty" yaml:"dayAfterLabel,omitempty"`

	// ActiveWeekdays overrides the rule set's global mask when non-nil.
	// nil means inherit from the global mask; an explicit all-false mask
	// means this type never runs.
	ActiveWeekdays *WeekdayMask `json:"activeWeekdays,omitempty" yaml:"activeWeekdays,omitempty"`

	// MinDaysOff is the number of mandatory rest days immediately after
	// working this type (0 = no requirement)
	MinDaysOff int `json:"minDaysOff" yaml:"minDaysOff"`

	// MaxConsecutive is the longest run of this type on consecutive calendar
	// days (0 = this type can never be worked two days in a row)
	MaxConsecutive int `json:"maxConsecutive" yaml:"maxConsecutive"`

	// AllowSameDayWith lists the type indices that may be worked on the same
	// calendar day as this one (empty = exclusive)
	AllowSameDayWith []int `json:"allowSameDayWith" yaml:"allowSameDayWith"`
}

// AllowsSameDay reports whether the given type index may be worked on the
// same calendar day as this type.
func (st *ShiftType) AllowsSameDay(typeIndex int) bool {
	return slices.Contains(st.AllowSameDayWith, typeIndex)
}

// RuleSet holds the full scheduling configuration for a ward.
type RuleSet struct {
	// ActiveWeekdays is the global weekday mask, Sunday-first
	ActiveWeekdays WeekdayMask `json:"activeWeekdays" yaml:"activeWeekdays"`

	TargetHoursPerWeek float64 `json:"targetHoursPerWeek" yaml:"targetHoursPerWeek"`

	// ShiftDurationHours is uniform across all shift types
	ShiftDurationHours float64 `json:"shiftDurationHours" yaml:"shiftDurationHours"`

	ShiftTypes []ShiftType `json:"shiftTypes" yaml:"shiftTypes"`
}

// TotalRequiredStaff sums RequiredStaff over all shift types.
func (rs *RuleSet) TotalRequiredStaff() int {
	total := 0
	for _, st := range rs.ShiftTypes {
		total += st.RequiredStaff
	}
	return total
}

// ActiveMaskFor resolves the weekday mask to use for the given shift type:
// the type's own override if present, otherwise the global mask. Resolved
// once at shift-instantiation time.
func (rs *RuleSet) ActiveMaskFor(typeIndex int) WeekdayMask {
	if override := rs.ShiftTypes[typeIndex].ActiveWeekdays; override != nil {
		return *override
	}
	return rs.ActiveWeekdays
}

// Unavailability is a date-stamped constraint: the staff member cannot work
// on that specific calendar date. Dates are absolute, not recurring.
type Unavailability struct {
	Date   time.Time `json:"date" yaml:"date"`
	Reason string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// StaffMember is one member of the roster. IDs are opaque strings; uniqueness
// is enforced by the roster collaborator, not the core.
type StaffMember struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Email       string           `json:"email,omitempty" yaml:"email,omitempty"`
	Unavailable []Unavailability `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
}

// ShiftInstance is one concrete occurrence of a shift type on a specific
// calendar date. Mutated only during generation; immutable afterward until
// regeneration.
type ShiftInstance struct {
	// ID is derived from type index and day index, e.g. "shift-1-day-14"
	ID string `json:"id"`

	Date time.Time `json:"date"`

	// TypeIndex references RuleSet.ShiftTypes by position
	TypeIndex int `json:"typeIndex"`

	// RequiredStaff is copied from the type definition at generation time
	RequiredStaff int `json:"requiredStaff"`

	// AssignedStaff holds staff IDs; unique, order not meaningful
	AssignedStaff []string `json:"assignedStaff"`
}

// HasStaff reports whether the given staff member is assigned to this instance.
func (s *ShiftInstance) HasStaff(staffID string) bool {
	return slices.Contains(s.AssignedStaff, staffID)
}

// Schedule is a completed month: the shift instances, the rule set used to
// produce them, and the roster they were drawn from. Replaced wholesale on
// regeneration, never partially mutated.
type Schedule struct {
	// ID identifies the generation run that produced this schedule
	ID string `json:"id"`

	// Month is the first day of the scheduled month
	Month time.Time `json:"month"`

	Shifts []*ShiftInstance `json:"shifts"`
	Rules  RuleSet          `json:"rules"`
	Roster []StaffMember    `json:"roster"`
}

// EligibilityResult is the outcome of an eligibility check. Reason is a
// human-readable diagnostic, never used for control flow.
type EligibilityResult struct {
	Eligible bool
	Reason   string
}

// StatEntry holds per-staff aggregates derived from a completed schedule.
type StatEntry struct {
	StaffID   string `json:"staffId"`
	StaffName string `json:"staffName"`

	TotalShifts int `json:"totalShifts"`

	// ShiftsByType counts instances per type index, aligned with
	// RuleSet.ShiftTypes
	ShiftsByType []int `json:"shiftsByType"`

	TotalHours          float64 `json:"totalHours"`
	AverageHoursPerWeek float64 `json:"averageHoursPerWeek"`

	// LongestStreak is the longest run of consecutive worked days
	LongestStreak int `json:"longestStreak"`

	DaysWorked int `json:"daysWorked"`
}
