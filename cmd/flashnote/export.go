package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashnote/internal/export"
)

func newExportCommand() *cobra.Command {
	var opts export.Options
	cmd := &cobra.Command{
		Use:   "export <notebook id>",
		Short: "Export the save history of a notebook with its flashcards as markdown",
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

			if opts.OutputDir == "" {
				opts.OutputDir = a.cfg.Outputs.ExportDirectory
			}
			exporter := export.NewExporter(a.notebooks, a.history(), a.cfg.Templates.SaveHistoryTemplate, a.logger)
			result, err := exporter.Export(cmd.Context(), notebookID, opts)
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Exported %d save(s) to %s\n", result.Saves, result.MarkdownPath)
			if result.PDFPath != "" {
				_, _ = fmt.Fprintf(out, "PDF: %s\n", result.PDFPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "Output directory. Defaults to outputs.export_directory")
	cmd.Flags().BoolVar(&opts.PDF, "pdf", false, "Generate PDF output in addition to markdown")
	return cmd
}
