package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rhallewell/wardroster/internal/config"
	"github.com/rhallewell/wardroster/pkg/core/calendar"
	"github.com/rhallewell/wardroster/pkg/core/model"
	"github.com/rhallewell/wardroster/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Env    string
	Store  db.ScheduleStore
	Logger *zap.Logger
	Ctx    context.Context
}

// rosterLookbackDays covers the prior-month lookback window when expanding
// recurring unavailability for a target month.
const rosterLookbackDays = 31

// LoadInputs loads the roster and rule set for scheduling the given month.
// Recurring unavailability is expanded over the month plus the lookback
// window so cross-boundary checks see the right dates.
func (a *AppContext) LoadInputs(month time.Time) ([]model.StaffMember, *model.RuleSet, error) {
	from := calendar.AddDays(calendar.MonthStart(month), -rosterLookbackDays)
	until := calendar.MonthEnd(month)

	roster, err := config.LoadRoster(a.Cfg.RosterFile, from, until)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}

	rules, err := config.LoadRules(a.Cfg.RulesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rules: %w", err)
	}

	return roster, rules, nil
}

// parseMonth parses a "YYYY-MM" argument into the first day of that month.
func parseMonth(arg string) (time.Time, error) {
	month, err := time.Parse("2006-01", arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("month must be in YYYY-MM format: %w", err)
	}
	return month, nil
}
