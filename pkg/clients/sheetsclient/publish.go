package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/rhallewell/wardroster/internal/config"
	"github.com/rhallewell/wardroster/pkg/core/calendar"
	"github.com/rhallewell/wardroster/pkg/core/model"
)

// BuildRows renders a schedule as spreadsheet rows: a header with one column
// per shift type, then one row per calendar day. Understaffed cells carry a
// fill-count marker; days after a shift with a DayAfterLabel show that label
// next to the staff name.
func BuildRows(schedule *model.Schedule) [][]interface{} {
	nameByID := make(map[string]string, len(schedule.Roster))
	for _, staff := range schedule.Roster {
		nameByID[staff.ID] = staff.Name
	}

	header := []interface{}{"Date"}
	for _, st := range schedule.Rules.ShiftTypes {
		label := st.Label
		if st.Abbreviation != "" {
			label = fmt.Sprintf("%s (%s)", st.Label, st.Abbreviation)
		}
		header = append(header, label)
	}

	shiftFor := func(day int, typeIndex int) *model.ShiftInstance {
		for _, s := range schedule.Shifts {
			if s.TypeIndex == typeIndex && s.Date.Day() == day {
				return s
			}
		}
		return nil
	}

	rows := [][]interface{}{header}
	for _, day := range calendar.MonthDays(schedule.Month) {
		row := []interface{}{day.Format("Mon Jan 02 2006")}
		for typeIndex, st := range schedule.Rules.ShiftTypes {
			shift := shiftFor(day.Day(), typeIndex)
			if shift == nil {
				row = append(row, "")
				continue
			}
			row = append(row, renderCell(shift, &st, &schedule.Rules, schedule.Shifts, nameByID))
		}
		rows = append(rows, row)
	}
	return rows
}

func renderCell(shift *model.ShiftInstance, st *model.ShiftType, rules *model.RuleSet, allShifts []*model.ShiftInstance, nameByID map[string]string) string {
	names := make([]string, 0, len(shift.AssignedStaff))
	for _, id := range shift.AssignedStaff {
		name := nameByID[id]
		if name == "" {
			name = id
		}
		if label := dayAfterLabel(id, shift, rules, allShifts); label != "" {
			name = fmt.Sprintf("%s (%s)", name, label)
		}
		names = append(names, name)
	}

	cell := strings.Join(names, ", ")
	if len(shift.AssignedStaff) < shift.RequiredStaff {
		cell = strings.TrimSpace(fmt.Sprintf("%s [%d/%d]", cell, len(shift.AssignedStaff), shift.RequiredStaff))
	}
	return cell
}

// dayAfterLabel returns the marker for staff who worked a labelled shift type
// the previous day (e.g. "R" for recovery after nights).
func dayAfterLabel(staffID string, shift *model.ShiftInstance, rules *model.RuleSet, allShifts []*model.ShiftInstance) string {
	yesterday := calendar.AddDays(shift.Date, -1)
	for _, s := range allShifts {
		if !calendar.SameDay(s.Date, yesterday) || !s.HasStaff(staffID) {
			continue
		}
		if s.TypeIndex >= 0 && s.TypeIndex < len(rules.ShiftTypes) {
			if label := rules.ShiftTypes[s.TypeIndex].DayAfterLabel; label != "" {
				return label
			}
		}
	}
	return ""
}

// PublishSchedule writes the rendered schedule to the configured spreadsheet.
func (c *Client) PublishSchedule(cfg *config.PublishConfig, schedule *model.Schedule) error {
	rows := BuildRows(schedule)

	sheetName := cfg.SheetName
	if sheetName == "" {
		sheetName = "Rota"
	}
	sheetRange := fmt.Sprintf("%s!A1", sheetName)

	if err := c.UpdateValues(cfg.SpreadsheetID, sheetRange, rows); err != nil {
		return fmt.Errorf("failed to publish schedule for %s: %w", schedule.Month.Format("2006-01"), err)
	}
	return nil
}
