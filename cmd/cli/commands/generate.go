package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhallewell/wardroster/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <year-month>",
		Short: "Generate the schedule for a month (e.g. generate 2026-09)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			roster, rules, err := app.LoadInputs(month)
			if err != nil {
				return err
			}

			result, err := services.GenerateMonth(app.Ctx, app.Store, app.Logger, month, roster, rules, dryRun)
			if err != nil {
				return err
			}

			schedule := result.Schedule
			fmt.Printf("\n✓ Schedule generated for %s\n\n", schedule.Month.Format("January 2006"))
			fmt.Printf("Schedule ID:  %s\n", schedule.ID)
			fmt.Printf("Shifts:       %d\n", len(schedule.Shifts))
			fmt.Printf("Understaffed: %d\n", result.Understaffed)
			if !result.Persisted {
				fmt.Println("Dry run - schedule was NOT persisted")
			}
			fmt.Println()

			for _, shift := range schedule.Shifts {
				label := schedule.Rules.ShiftTypes[shift.TypeIndex].Label
				marker := ""
				if len(shift.AssignedStaff) < shift.RequiredStaff {
					marker = fmt.Sprintf("  [%d/%d]", len(shift.AssignedStaff), shift.RequiredStaff)
				}
				fmt.Printf("  %s  %-12s %v%s\n", shift.Date.Format("2006-01-02"), label, shift.AssignedStaff, marker)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Generate without persisting to the history store")

	return cmd
}
