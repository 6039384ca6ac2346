package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhallewell/wardroster/pkg/core/services"
)

// CheckCmd creates the check command
func CheckCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <staff_id> <date> <type_index>",
		Short: "Check whether a staff member could be assigned to a shift (e.g. check n004 2026-09-14 1)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			staffID := args[0]

			date, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
			}

			typeIndex, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("type_index must be a number: %w", err)
			}

			roster, rules, err := app.LoadInputs(date)
			if err != nil {
				return err
			}

			result, err := services.CheckAssignment(app.Ctx, app.Store, app.Logger, roster, rules, staffID, date, typeIndex)
			if err != nil {
				return err
			}

			if result.Eligible {
				fmt.Printf("\n✓ %s can work %s on %s\n\n", staffID, rules.ShiftTypes[typeIndex].Label, args[1])
			} else {
				fmt.Printf("\n✗ %s cannot work %s on %s: %s\n\n", staffID, rules.ShiftTypes[typeIndex].Label, args[1], result.Reason)
			}

			return nil
		},
	}
}
