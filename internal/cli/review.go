// Package cli implements the interactive terminal flows of the flashnote command.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/flashnote/internal/saving"
)

const reviewHelp = `Commands:
  y        save the flashcards
  n        cancel
  d <n>    delete flashcard n
  e <n>    edit flashcard n
`

// ReviewCLI lets the user edit and approve the previews of a draft before they are saved.
type ReviewCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	faint        *color.Color
}

func NewReviewCLI(stdin io.Reader, stdout io.Writer) *ReviewCLI {
	return &ReviewCLI{
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		faint:        color.New(color.Faint),
	}
}

// PrintDraft writes the delta summary and every preview of the draft.
func (r *ReviewCLI) PrintDraft(draft *saving.Draft) error {
	if _, err := r.bold.Fprintf(r.stdoutWriter, "%d flashcard(s) suggested", len(draft.Flashcards)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	if _, err := r.faint.Fprintf(r.stdoutWriter, " (target %d, %d words of new content)\n", draft.SuggestedCount, len(strings.Fields(draft.Delta))); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	for i, p := range draft.Flashcards {
		if _, err := fmt.Fprintf(r.stdoutWriter, "%2d. %s\n    %s  %s\n",
			i+1,
			r.bold.Sprint(p.Question),
			r.italic.Sprint(p.Answer),
			r.faint.Sprintf("[%s]", p.Category),
		); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	return nil
}

// Review prints the draft and reads commands until the user saves or cancels.
// Edits are applied to draft in place. End of input cancels.
func (r *ReviewCLI) Review(ctx context.Context, draft *saving.Draft) (bool, error) {
	if err := r.PrintDraft(draft); err != nil {
		return false, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		line, err := r.prompt("Save these flashcards? [y/n/d <n>/e <n>/?] ")
		if errors.Is(err, io.EOF) && line == "" {
			return false, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		command := strings.ToLower(fields[0])
		switch command {
		case "y", "yes":
			return true, nil
		case "n", "no", "q":
			return false, nil
		case "d", "e":
			index, ok := r.previewIndex(draft, fields)
			if !ok {
				continue
			}
			tempID := draft.Flashcards[index].TempID
			if command == "d" {
				err = draft.RemovePreview(tempID)
			} else {
				err = r.edit(draft, index)
			}
			if err != nil {
				color.New(color.FgRed).Fprintf(r.stdoutWriter, "%v\n", err)
				continue
			}
			if err := r.PrintDraft(draft); err != nil {
				return false, err
			}
		default:
			if _, err := fmt.Fprint(r.stdoutWriter, reviewHelp); err != nil {
				return false, fmt.Errorf("failed to write to stdout: %w", err)
			}
		}
	}
}

func (r *ReviewCLI) previewIndex(draft *saving.Draft, fields []string) (int, bool) {
	if len(fields) != 2 {
		_, _ = fmt.Fprint(r.stdoutWriter, reviewHelp)
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > len(draft.Flashcards) {
		color.New(color.FgRed).Fprintf(r.stdoutWriter, "no flashcard %s\n", fields[1])
		return 0, false
	}
	return n - 1, true
}

// edit asks for each field of a preview. An empty answer keeps the current value.
func (r *ReviewCLI) edit(draft *saving.Draft, index int) error {
	current := draft.Flashcards[index]
	var edit saving.PreviewEdit
	for _, f := range []struct {
		label string
		value string
		dest  **string
	}{
		{"Question", current.Question, &edit.Question},
		{"Answer", current.Answer, &edit.Answer},
		{"Category", current.Category, &edit.Category},
	} {
		line, err := r.prompt(fmt.Sprintf("%s [%s]: ", f.label, f.value))
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if v := strings.TrimSpace(line); v != "" {
			*f.dest = &v
		}
	}
	return draft.EditPreview(current.TempID, edit)
}

func (r *ReviewCLI) prompt(text string) (string, error) {
	if _, err := fmt.Fprint(r.stdoutWriter, text); err != nil {
		return "", fmt.Errorf("failed to write to stdout: %w", err)
	}
	line, err := r.stdinReader.ReadString('\n')
	return strings.TrimSpace(line), err
}
