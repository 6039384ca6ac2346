package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rhallewell/wardroster/pkg/core/model"
	"github.com/rhallewell/wardroster/pkg/core/scheduler"
)

// LoadRules reads a rule set from a JSON file. Malformed JSON and
// structurally invalid rule sets are rejected here, at the collaborator
// boundary, so the core can assume a valid rule set on input.
func LoadRules(path string) (*model.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes and validates a JSON rule set. Unknown fields are
// rejected to catch misspelled keys in imported configurations.
func ParseRules(data []byte) (*model.RuleSet, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var rules model.RuleSet
	if err := decoder.Decode(&rules); err != nil {
		return nil, fmt.Errorf("failed to parse rule set: %w", err)
	}

	if err := scheduler.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}

	return &rules, nil
}

// SaveRules writes a rule set to a JSON file, pretty-printed for hand editing.
func SaveRules(rules *model.RuleSet, path string) error {
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rule set: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}
	return nil
}

// DefaultRules returns the shipped example rule set: a 12-hour day shift for
// three staff and a 12-hour night shift for two, with two rest days after
// nights and no back-to-back nights.
func DefaultRules() *model.RuleSet {
	return &model.RuleSet{
		ActiveWeekdays:     model.AllDays(),
		TargetHoursPerWeek: 36,
		ShiftDurationHours: 12,
		ShiftTypes: []model.ShiftType{
			{
				Label:            "Day Shift",
				Abbreviation:     "D",
				StartTime:        "07:00",
				EndTime:          "19:00",
				RequiredStaff:    3,
				MinDaysOff:       0,
				MaxConsecutive:   4,
				AllowSameDayWith: []int{},
			},
			{
				Label:            "Night Shift",
				Abbreviation:     "N",
				StartTime:        "19:00",
				EndTime:          "07:00",
				RequiredStaff:    2,
				DayAfterLabel:    "R",
				MinDaysOff:       2,
				MaxConsecutive:   0,
				AllowSameDayWith: []int{},
			},
		},
	}
}
