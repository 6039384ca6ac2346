package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhallewell/wardroster/internal/config"
	"github.com/rhallewell/wardroster/pkg/clients/sheetsclient"
	"github.com/rhallewell/wardroster/pkg/core/calendar"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <year-month>",
		Short: "Publish a stored schedule to the configured spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			if app.Cfg.Publish == nil {
				return fmt.Errorf("no publish target configured (set publish.spreadsheetID in the config file)")
			}

			monthKey := calendar.MonthKey(month)
			schedule, err := app.Store.GetSchedule(app.Ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to load schedule %s: %w", monthKey, err)
			}
			if schedule == nil {
				return fmt.Errorf("no schedule stored for month %s - run generate first", args[0])
			}

			oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			client, err := sheetsclient.NewClient(app.Ctx, oauthCfg)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			if err := client.PublishSchedule(app.Cfg.Publish, schedule); err != nil {
				return err
			}

			fmt.Printf("\n✓ Schedule for %s published to spreadsheet %s\n\n",
				month.Format("January 2006"), app.Cfg.Publish.SpreadsheetID)

			return nil
		},
	}
}
