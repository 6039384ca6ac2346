package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhallewell/wardroster/cmd/cli/commands"
	"github.com/rhallewell/wardroster/internal/config"
	"github.com/rhallewell/wardroster/pkg/db"
	"github.com/rhallewell/wardroster/pkg/postgres"
	"github.com/rhallewell/wardroster/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wardroster",
		Short: "Wardroster CLI - Generate and inspect monthly ward shift schedules",
		Long:  `A CLI tool for generating monthly staff schedules under per-shift-type rest, consecutive-shift, and same-day combination rules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateCmd(appRef()))
	rootCmd.AddCommand(commands.StatsCmd(appRef()))
	rootCmd.AddCommand(commands.CheckCmd(appRef()))
	rootCmd.AddCommand(commands.ImportRulesCmd(appRef()))
	rootCmd.AddCommand(commands.ShowRulesCmd(appRef()))
	rootCmd.AddCommand(commands.ListStaffCmd(appRef()))
	rootCmd.AddCommand(commands.PublishCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, created before initApp fills it in.
// Commands only dereference its fields at RunE time, after PersistentPreRunE
// has run.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and the schedule store
func initApp() error {
	appRef()
	app.Ctx = context.Background()
	app.Env = env

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	if app.Cfg.DatabaseURL != "" {
		app.Logger.Info("Connecting to database")
		pgdb, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pgdb.RunMigrations(app.Ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Store = pgdb
		app.Logger.Info("Database initialized successfully")
	} else {
		app.Logger.Info("No database configured, using in-memory store")
		app.Store = db.NewMemoryStore()
	}

	return nil
}
