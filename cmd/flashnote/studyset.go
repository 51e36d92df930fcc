package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashnote/internal/cli"
	"github.com/at-ishikawa/flashnote/internal/notebook"
)

func newStudySetCommand() *cobra.Command {
	studySetCmd := &cobra.Command{
		Use:   "study-sets",
		Short: "Manage study sets",
	}
	studySetCmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a study set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			studySet := &notebook.StudySet{Name: args[0]}
			if err := a.notebooks.CreateStudySet(cmd.Context(), studySet); err != nil {
				return fmt.Errorf("notebooks.CreateStudySet() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created study set %d: %s\n", studySet.ID, studySet.Name)
			return nil
		},
	})
	return studySetCmd
}

func newNotebookCommand() *cobra.Command {
	notebookCmd := &cobra.Command{
		Use:   "notebooks",
		Short: "Manage notebooks",
	}
	notebookCmd.AddCommand(&cobra.Command{
		Use:   "create <study set id> <title>",
		Short: "Create an empty notebook in a study set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			studySetID, err := parseID("study set", args[0])
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if _, err := a.notebooks.FindStudySet(ctx, studySetID); err != nil {
				return fmt.Errorf("notebooks.FindStudySet() > %w", err)
			}
			nb := &notebook.Notebook{StudySetID: studySetID, Title: args[1]}
			if err := a.notebooks.Create(ctx, nb); err != nil {
				return fmt.Errorf("notebooks.Create() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created notebook %d: %s\n", nb.ID, nb.Title)
			return nil
		},
	})
	notebookCmd.AddCommand(newNotebookListCommand())
	return notebookCmd
}

func newNotebookListCommand() *cobra.Command {
	var studySetID int64
	format := cli.HistoryFormatTable
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notebooks, optionally in one study set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if studySetID < 0 {
				return fmt.Errorf("invalid study set id %d", studySetID)
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.history().ListNotebooks(cmd.Context(), studySetID)
			if err != nil {
				return fmt.Errorf("history.ListNotebooks() > %w", err)
			}
			return cli.WriteNotebooks(cmd.OutOrStdout(), entries, format)
		},
	}
	cmd.Flags().Int64Var(&studySetID, "study-set", 0, "Only list notebooks of this study set")
	cmd.Flags().Var(&format, "format", "Output format. Options: table, yaml")
	return cmd
}
