package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhallewell/wardroster/pkg/core/services"
)

// StatsCmd creates the stats command
func StatsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <year-month>",
		Short: "Show per-staff statistics for a stored schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			stats, err := services.MonthStats(app.Ctx, app.Store, app.Logger, month)
			if err != nil {
				return err
			}

			fmt.Printf("\nStatistics for %s:\n\n", month.Format("January 2006"))
			fmt.Printf("%-20s %7s %8s %8s %8s %7s\n", "Staff", "Shifts", "Hours", "Avg/wk", "Streak", "Days")
			for _, s := range stats {
				fmt.Printf("%-20s %7d %8.1f %8.1f %8d %7d\n",
					s.StaffName, s.TotalShifts, s.TotalHours, s.AverageHoursPerWeek, s.LongestStreak, s.DaysWorked)
			}
			fmt.Println()

			return nil
		},
	}
}
