package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashnote/internal/database"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	rootCommand := newRootCommand()
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "flashnote",
		Short:         "Turn notebook edits into flashcards",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newMigrateCommand(),
		newStudySetCommand(),
		newNotebookCommand(),
		newSaveCommand(),
		newHistoryCommand(),
		newRegenerateCommand(),
		newExportCommand(),
	)
	return rootCommand
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			// Migrate closes db
			applied, err := database.Migrate(db, cfg.Database.Driver)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			if applied {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
			}
			return nil
		},
	}
}
