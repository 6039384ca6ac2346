package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rhallewell/wardroster/pkg/core/calendar"
	"github.com/rhallewell/wardroster/pkg/core/model"
	"github.com/rhallewell/wardroster/pkg/core/scheduler"
	"github.com/rhallewell/wardroster/pkg/db"
)

// CheckAssignment previews whether a staff member could be assigned to a
// shift of the given type on the given date, so a manual edit surface can
// explain rule violations before they happen. The check runs against the
// stored schedule for that month (if any) plus the previous month's lookback
// slice, so reasons reflect real history.
func CheckAssignment(
	ctx context.Context,
	store db.ScheduleStore,
	logger *zap.Logger,
	roster []model.StaffMember,
	rules *model.RuleSet,
	staffID string,
	date time.Time,
	typeIndex int,
) (model.EligibilityResult, error) {
	if err := scheduler.ValidateRules(rules); err != nil {
		return model.EligibilityResult{}, fmt.Errorf("invalid rule set: %w", err)
	}
	if typeIndex < 0 || typeIndex >= len(rules.ShiftTypes) {
		return model.EligibilityResult{}, fmt.Errorf("shift type index %d out of range (rule set has %d types)", typeIndex, len(rules.ShiftTypes))
	}

	var staff *model.StaffMember
	for i := range roster {
		if roster[i].ID == staffID {
			staff = &roster[i]
			break
		}
	}
	if staff == nil {
		return model.EligibilityResult{}, fmt.Errorf("unknown staff id %q", staffID)
	}

	day := calendar.Normalize(date)
	monthKey := calendar.MonthKey(day)

	logger.Debug("Checking assignment",
		zap.String("staff_id", staffID),
		zap.String("date", day.Format("2006-01-02")),
		zap.Int("type_index", typeIndex))

	current, err := store.GetSchedule(ctx, monthKey)
	if err != nil {
		return model.EligibilityResult{}, fmt.Errorf("failed to load schedule %s: %w", monthKey, err)
	}

	history, err := loadLookbackHistory(ctx, store, calendar.MonthStart(day))
	if err != nil {
		return model.EligibilityResult{}, err
	}

	var allShifts []*model.ShiftInstance
	if prev := history.Previous(day); prev != nil {
		allShifts = append(allShifts, prev.Shifts...)
	}

	// Locate the existing instance for this date and type, or synthesize one
	// for a day that has no instance yet
	var shift *model.ShiftInstance
	if current != nil {
		allShifts = append(allShifts, current.Shifts...)
		for _, s := range current.Shifts {
			if s.TypeIndex == typeIndex && calendar.SameDay(s.Date, day) {
				shift = s
				break
			}
		}
	}
	if shift == nil {
		shift = &model.ShiftInstance{
			ID:            fmt.Sprintf("shift-%d-day-%d", typeIndex, day.Day()-1),
			Date:          day,
			TypeIndex:     typeIndex,
			RequiredStaff: rules.ShiftTypes[typeIndex].RequiredStaff,
			AssignedStaff: []string{},
		}
		allShifts = append(allShifts, shift)
	}

	return scheduler.CanAssign(*staff, shift, allShifts, rules), nil
}
