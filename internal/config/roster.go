package config

import (
	"fmt"
	"os"
	"time"

	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/rhallewell/wardroster/pkg/core/calendar"
	"github.com/rhallewell/wardroster/pkg/core/model"
)

// RecurringUnavailability is a recurrence-rule constraint in the roster file.
// It is expanded into absolute dates at load time; the scheduling core only
// ever sees absolute unavailability dates.
type RecurringUnavailability struct {
	RRule  string `yaml:"rrule" validate:"required"`
	Reason string `yaml:"reason,omitempty"`
}

// RosterEntry is one staff member as declared in the roster file.
type RosterEntry struct {
	ID          string                    `yaml:"id" validate:"required"`
	Name        string                    `yaml:"name" validate:"required"`
	Email       string                    `yaml:"email,omitempty" validate:"omitempty,email"`
	Unavailable []model.Unavailability    `yaml:"unavailable,omitempty"`
	Recurring   []RecurringUnavailability `yaml:"recurringUnavailable,omitempty" validate:"dive"`
}

// RosterFile is the on-disk roster format.
type RosterFile struct {
	Staff []RosterEntry `yaml:"staff" validate:"required,min=1,dive"`
}

// LoadRoster reads the roster file and expands recurring unavailability into
// absolute dates covering [from, until]. Duplicate staff IDs are rejected
// here so the core can treat IDs as unique.
func LoadRoster(path string, from, until time.Time) ([]model.StaffMember, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var file RosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("roster validation failed: %w", err)
	}

	seen := make(map[string]bool)
	roster := make([]model.StaffMember, 0, len(file.Staff))
	for i, entry := range file.Staff {
		if seen[entry.ID] {
			return nil, fmt.Errorf("duplicate staff id %q in roster", entry.ID)
		}
		seen[entry.ID] = true

		unavailable := make([]model.Unavailability, 0, len(entry.Unavailable))
		for _, u := range entry.Unavailable {
			unavailable = append(unavailable, model.Unavailability{
				Date:   calendar.Normalize(u.Date),
				Reason: u.Reason,
			})
		}

		for _, rec := range entry.Recurring {
			dates, err := expandRRule(rec.RRule, from, until)
			if err != nil {
				return nil, fmt.Errorf("invalid rrule for staff[%d] (%s): %w", i, entry.ID, err)
			}
			for _, d := range dates {
				unavailable = append(unavailable, model.Unavailability{Date: d, Reason: rec.Reason})
			}
		}

		roster = append(roster, model.StaffMember{
			ID:          entry.ID,
			Name:        entry.Name,
			Email:       entry.Email,
			Unavailable: unavailable,
		})
	}

	return roster, nil
}

// expandRRule returns the normalized occurrence dates of the rule within
// [from, until], inclusive.
func expandRRule(rule string, from, until time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, err
	}
	r.DTStart(calendar.Normalize(from))

	occurrences := r.Between(calendar.Normalize(from), calendar.Normalize(until), true)
	dates := make([]time.Time, 0, len(occurrences))
	for _, o := range occurrences {
		dates = append(dates, calendar.Normalize(o))
	}
	return dates, nil
}
