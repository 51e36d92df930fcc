package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashnote/internal/cli"
	"github.com/at-ishikawa/flashnote/internal/saving"
)

func newSaveCommand() *cobra.Command {
	var (
		file        string
		yes         bool
		contentOnly bool
	)
	cmd := &cobra.Command{
		Use:   "save <notebook id>",
		Short: "Save notebook content and generate flashcards from what is new",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notebookID, err := parseID("notebook", args[0])
			if err != nil {
				return err
			}
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			orchestrator, err := a.orchestrator(!contentOnly)
			if err != nil {
				return err
			}

			if contentOnly {
				if err := orchestrator.SaveContentOnly(ctx, notebookID, string(content)); err != nil {
					return fmt.Errorf("orchestrator.SaveContentOnly() > %w", err)
				}
				_, _ = fmt.Fprintln(out, "Saved content without generating flashcards.")
				return nil
			}

			prepared, err := orchestrator.Prepare(ctx, saving.PrepareRequest{NotebookID: notebookID, Content: string(content)})
			if err != nil {
				return fmt.Errorf("orchestrator.Prepare() > %w", err)
			}
			if !prepared.HasNewContent {
				_, _ = fmt.Fprintln(out, "Not enough new content since the last save; no flashcards to generate.")
				return nil
			}

			draft := saving.NewSaveDraft(prepared, string(content), time.Now())
			review := cli.NewReviewCLI(cmd.InOrStdin(), out)
			if yes {
				if err := review.PrintDraft(draft); err != nil {
					return err
				}
			} else {
				ok, err := review.Review(ctx, draft)
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(out, "Cancelled. Nothing was saved.")
					return nil
				}
			}

			result, err := orchestrator.Confirm(ctx, draft.ConfirmRequest(draft.ID))
			if err != nil {
				return fmt.Errorf("orchestrator.Confirm() > %w", err)
			}
			_, _ = color.New(color.FgGreen).Fprintf(out, "Saved #%d with %d flashcard(s).\n", result.SaveID, len(result.FlashcardIDs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "File with the notebook content")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Save the generated flashcards without review")
	cmd.Flags().BoolVar(&contentOnly, "draft", false, "Save the content only, without generating flashcards")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
