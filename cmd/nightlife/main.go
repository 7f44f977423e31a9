package main

import (
	"fmt"
	"os"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/app"
	"github.com/spf13/cobra"
)

// Set via ldflags during build.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

var envFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nightlife",
	Short: "Nightlife - see which bars your friends are going to tonight",
	Long: `Nightlife serves the JSON API behind the nightlife app: venue search
through the business directory, local accounts with cookie sessions, and
per-venue attendance.

Configuration is read from the environment, optionally seeded from a
dotenv file.`,
	Version: app.BuildVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return app.LoadEnvFile(envFile)
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(app.LoadConfig())
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		return application.Run()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Migrate(app.LoadConfig()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Nightlife version %s\nCommit: %s\nBuilt: %s\n",
		app.BuildVersion, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to seed the environment from")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
