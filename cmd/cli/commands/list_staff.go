package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhallewell/wardroster/internal/config"
	"github.com/rhallewell/wardroster/pkg/core/calendar"
)

// ListStaffCmd creates the listStaff command
func ListStaffCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listStaff",
		Short: "List the staff roster with upcoming unavailability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Expand recurring unavailability over the coming month for display
			now := calendar.Normalize(time.Now())
			roster, err := config.LoadRoster(app.Cfg.RosterFile, now, calendar.AddDays(now, 31))
			if err != nil {
				return fmt.Errorf("failed to load roster: %w", err)
			}

			fmt.Printf("\nFound %d staff members:\n\n", len(roster))
			for _, staff := range roster {
				fmt.Printf("- %s (%s)", staff.Name, staff.ID)
				if staff.Email != "" {
					fmt.Printf(" - %s", staff.Email)
				}
				fmt.Println()
				for _, u := range staff.Unavailable {
					if u.Date.Before(now) {
						continue
					}
					if u.Reason != "" {
						fmt.Printf("    unavailable %s (%s)\n", u.Date.Format("2006-01-02"), u.Reason)
					} else {
						fmt.Printf("    unavailable %s\n", u.Date.Format("2006-01-02"))
					}
				}
			}
			fmt.Println()

			return nil
		},
	}
}
