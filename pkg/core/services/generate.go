package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rhallewell/wardroster/pkg/core/calendar"
	"github.com/rhallewell/wardroster/pkg/core/model"
	"github.com/rhallewell/wardroster/pkg/core/scheduler"
	"github.com/rhallewell/wardroster/pkg/db"
)

// GenerateResult represents the result of generating a month's schedule.
type GenerateResult struct {
	Schedule *model.Schedule

	// Understaffed counts shift instances left with fewer than RequiredStaff
	Understaffed int

	// Persisted is false for dry runs
	Persisted bool
}

// GenerateMonth generates the schedule for a month and persists it into the
// history store, replacing any previous schedule for that month wholesale.
// The previous month's stored schedule, if any, supplies the lookback shifts
// for cross-boundary constraint checks. With dryRun set the schedule is
// generated but not persisted.
func GenerateMonth(
	ctx context.Context,
	store db.ScheduleStore,
	logger *zap.Logger,
	month time.Time,
	roster []model.StaffMember,
	rules *model.RuleSet,
	dryRun bool,
) (*GenerateResult, error) {
	monthStart := calendar.MonthStart(month)
	monthKey := calendar.MonthKey(monthStart)

	logger.Debug("Generating schedule",
		zap.String("month_key", monthKey),
		zap.Int("roster_size", len(roster)),
		zap.Int("shift_types", len(rules.ShiftTypes)),
		zap.Bool("dry_run", dryRun))

	history, err := loadLookbackHistory(ctx, store, monthStart)
	if err != nil {
		return nil, err
	}

	schedule, err := scheduler.Generate(monthStart, roster, rules, history)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule for %s: %w", monthKey, err)
	}
	schedule.ID = uuid.New().String()

	understaffed := 0
	for _, shift := range schedule.Shifts {
		if len(shift.AssignedStaff) < shift.RequiredStaff {
			understaffed++
		}
	}

	logger.Info("Schedule generated",
		zap.String("schedule_id", schedule.ID),
		zap.String("month_key", monthKey),
		zap.Int("shifts", len(schedule.Shifts)),
		zap.Int("understaffed", understaffed))

	if dryRun {
		return &GenerateResult{Schedule: schedule, Understaffed: understaffed}, nil
	}

	if err := store.UpsertSchedule(ctx, monthKey, schedule); err != nil {
		return nil, fmt.Errorf("failed to persist schedule for %s: %w", monthKey, err)
	}
	logger.Debug("Schedule persisted", zap.String("month_key", monthKey))

	return &GenerateResult{Schedule: schedule, Understaffed: understaffed, Persisted: true}, nil
}

// loadLookbackHistory fetches the previous month's schedule from the store
// into an in-memory history for the generator.
func loadLookbackHistory(ctx context.Context, store db.ScheduleStore, monthStart time.Time) (scheduler.History, error) {
	prevKey := calendar.MonthKey(calendar.PreviousMonth(monthStart))

	prev, err := store.GetSchedule(ctx, prevKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous schedule %s: %w", prevKey, err)
	}

	history := scheduler.History{}
	if prev != nil {
		history.Put(prev)
	}
	return history, nil
}
