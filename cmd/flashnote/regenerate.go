package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashnote/internal/cli"
	"github.com/at-ishikawa/flashnote/internal/saving"
)

func newRegenerateCommand() *cobra.Command {
	var (
		studySetID int64
		yes        bool
	)
	cmd := &cobra.Command{
		Use:   "regenerate <save id>",
		Short: "Replace the flashcards of a past save with newly generated ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := parseID("save", args[0])
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			orchestrator, err := a.orchestrator(true)
			if err != nil {
				return err
			}

			regenerated, err := orchestrator.Regenerate(ctx, saving.RegenerateRequest{SaveID: saveID, StudySetID: studySetID})
			if err != nil {
				return fmt.Errorf("orchestrator.Regenerate() > %w", err)
			}

			draft := saving.NewRegenerationDraft(regenerated, time.Now())
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
					_, _ = fmt.Fprintln(out, "Cancelled. The previous flashcards are kept.")
					return nil
				}
			}

			ids, err := orchestrator.ConfirmRegeneration(ctx, draft.ConfirmRegenerationRequest())
			if err != nil {
				return fmt.Errorf("orchestrator.ConfirmRegeneration() > %w", err)
			}
			_, _ = color.New(color.FgGreen).Fprintf(out, "Replaced the flashcards of #%d with %d new flashcard(s).\n", saveID, len(ids))
			return nil
		},
	}
	cmd.Flags().Int64Var(&studySetID, "study-set", 0, "Study set that receives the flashcards")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace without review")
	_ = cmd.MarkFlagRequired("study-set")
	return cmd
}
