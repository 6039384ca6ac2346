package db

import (
	"context"

	"github.com/rhallewell/wardroster/pkg/core/model"
)

// ScheduleStore defines the history store: schedules keyed by month
// ("<year>-<zeroBasedMonth>"). Entries are replaced wholesale on
// regeneration and deleted only on a full rule-set change.
//
// Both the in-memory MemoryStore and postgres.DB implement this interface.
type ScheduleStore interface {
	// GetSchedule returns the stored schedule for the month key, or nil if
	// no schedule is stored for that month.
	GetSchedule(ctx context.Context, monthKey string) (*model.Schedule, error)

	// UpsertSchedule stores a schedule under the month key, replacing any
	// existing entry atomically from the caller's perspective.
	UpsertSchedule(ctx context.Context, monthKey string, schedule *model.Schedule) error

	// DeleteAllSchedules clears the entire history. Used when the rule set
	// changes, since stored schedules may violate the new rules.
	DeleteAllSchedules(ctx context.Context) error

	// ListMonthKeys returns the keys of all stored schedules, sorted.
	ListMonthKeys(ctx context.Context) ([]string, error)
}
