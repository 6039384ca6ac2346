package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rhallewell/wardroster/pkg/core/model"
	"github.com/rhallewell/wardroster/pkg/core/scheduler"
	"github.com/rhallewell/wardroster/pkg/db"
)

// ReplaceRules applies a new rule set: it clears the entire schedule history,
// because schedules generated under the old rules may violate the new ones,
// and regenerates the given month from an empty history.
func ReplaceRules(
	ctx context.Context,
	store db.ScheduleStore,
	logger *zap.Logger,
	newRules *model.RuleSet,
	month time.Time,
	roster []model.StaffMember,
) (*GenerateResult, error) {
	if err := scheduler.ValidateRules(newRules); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}

	keys, err := store.ListMonthKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored schedules: %w", err)
	}

	logger.Info("Replacing rule set, invalidating schedule history",
		zap.Int("stored_schedules", len(keys)))

	if err := store.DeleteAllSchedules(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear schedule history: %w", err)
	}

	return GenerateMonth(ctx, store, logger, month, roster, newRules, false)
}
