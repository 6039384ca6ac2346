package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhallewell/wardroster/internal/config"
	"github.com/rhallewell/wardroster/pkg/core/services"
)

// ImportRulesCmd creates the importRules command. Importing a rule set
// invalidates the entire schedule history, since stored schedules may
// violate the new rules, and regenerates the given month from scratch.
func ImportRulesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importRules <path> <year-month>",
		Short: "Import a JSON rule set, clear schedule history, and regenerate the given month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[1])
			if err != nil {
				return err
			}

			newRules, err := config.LoadRules(args[0])
			if err != nil {
				return fmt.Errorf("failed to import rules: %w", err)
			}

			roster, _, err := app.LoadInputs(month)
			if err != nil {
				return err
			}

			result, err := services.ReplaceRules(app.Ctx, app.Store, app.Logger, newRules, month, roster)
			if err != nil {
				return err
			}

			if err := config.SaveRules(newRules, app.Cfg.RulesFile); err != nil {
				return err
			}

			fmt.Printf("\n✓ Rule set imported (%d shift types)\n", len(newRules.ShiftTypes))
			fmt.Printf("Schedule history cleared; %s regenerated (%d shifts, %d understaffed)\n\n",
				month.Format("January 2006"), len(result.Schedule.Shifts), result.Understaffed)

			return nil
		},
	}
}

// ShowRulesCmd creates the showRules command
func ShowRulesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showRules",
		Short: "Print the active rule set as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := config.LoadRules(app.Cfg.RulesFile)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(rules)
		},
	}
}
