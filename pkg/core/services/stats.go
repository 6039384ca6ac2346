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

// MonthStats loads the stored schedule for a month and derives the per-staff
// aggregates from it.
func MonthStats(ctx context.Context, store db.ScheduleStore, logger *zap.Logger, month time.Time) ([]model.StatEntry, error) {
	monthKey := calendar.MonthKey(month)

	logger.Debug("Computing stats", zap.String("month_key", monthKey))

	schedule, err := store.GetSchedule(ctx, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule %s: %w", monthKey, err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("no schedule stored for month %s", monthKey)
	}

	stats := scheduler.ComputeStats(schedule.Roster, schedule.Shifts, &schedule.Rules, schedule.Month)

	logger.Debug("Stats computed",
		zap.String("month_key", monthKey),
		zap.Int("staff", len(stats)))

	return stats, nil
}
