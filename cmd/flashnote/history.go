package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/flashnote/internal/cli"
)

var _ pflag.Value = (*cli.HistoryFormat)(nil)

func newHistoryCommand() *cobra.Command {
	format := cli.HistoryFormatTable
	cmd := &cobra.Command{
		Use:   "history <notebook id>",
		Short: "List the saves of a notebook, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notebookID, err := parseID("notebook", args[0])
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.history().ListSaves(cmd.Context(), notebookID)
			if err != nil {
				return fmt.Errorf("history.ListSaves() > %w", err)
			}
			return cli.WriteHistory(cmd.OutOrStdout(), entries, format)
		},
	}
	cmd.Flags().Var(&format, "format", "Output format. Options: table, yaml")
	return cmd
}
