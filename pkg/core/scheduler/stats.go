package scheduler

import (
	"sort"
	"time"

	"github.com/rhallewell/wardroster/pkg/core/calendar"
	"github.com/rhallewell/wardroster/pkg/core/model"
)

// ComputeStats derives per-staff aggregates from a completed schedule, one
// entry per roster member in roster order. Read-only: consumes schedule
// output and never feeds back into generation.
func ComputeStats(roster []model.StaffMember, shifts []*model.ShiftInstance, rules *model.RuleSet, month time.Time) []model.StatEntry {
	entries := make([]model.StatEntry, 0, len(roster))
	for _, staff := range roster {
		entries = append(entries, staffStats(staff, shifts, rules, month))
	}
	return entries
}

func staffStats(staff model.StaffMember, shifts []*model.ShiftInstance, rules *model.RuleSet, month time.Time) model.StatEntry {
	var own []*model.ShiftInstance
	for _, s := range shifts {
		if s.HasStaff(staff.ID) {
			own = append(own, s)
		}
	}

	byType := make([]int, len(rules.ShiftTypes))
	for _, s := range own {
		if s.TypeIndex >= 0 && s.TypeIndex < len(byType) {
			byType[s.TypeIndex]++
		}
	}

	totalHours := float64(len(own)) * rules.ShiftDurationHours
	weeks := calendar.WeeksInMonth(month)

	return model.StatEntry{
		StaffID:             staff.ID,
		StaffName:           staff.Name,
		TotalShifts:         len(own),
		ShiftsByType:        byType,
		TotalHours:          totalHours,
		AverageHoursPerWeek: totalHours / float64(weeks),
		LongestStreak:       longestStreak(own),
		DaysWorked:          distinctDays(own),
	}
}

// longestStreak returns the longest run of consecutive worked calendar days.
// A same-day double does not break or extend a streak beyond its single day.
func longestStreak(shifts []*model.ShiftInstance) int {
	if len(shifts) == 0 {
		return 0
	}

	dates := distinctSortedDates(shifts)

	longest := 1
	current := 1
	for i := 1; i < len(dates); i++ {
		if calendar.DaysBetween(dates[i-1], dates[i]) == 1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

func distinctDays(shifts []*model.ShiftInstance) int {
	return len(distinctSortedDates(shifts))
}

func distinctSortedDates(shifts []*model.ShiftInstance) []time.Time {
	seen := make(map[string]bool)
	var dates []time.Time
	for _, s := range shifts {
		day := calendar.Normalize(s.Date)
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
