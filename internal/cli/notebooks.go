package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/at-ishikawa/flashnote/internal/saving"
)

// WriteNotebooks writes a notebook listing in the given format.
func WriteNotebooks(w io.Writer, entries []saving.NotebookEntry, format HistoryFormat) error {
	if format == HistoryFormatYAML {
		return writeYAML(w, "notebooks", entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No notebooks yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTUDY SET\tTITLE\tFLASHCARDS\tLAST SAVED")
	for _, e := range entries {
		lastSaved := "never"
		if e.LastSavedAt != nil {
			lastSaved = e.LastSavedAt.Format("2006-01-02 15:04")
		}
		_, _ = fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\n", e.ID, e.StudySetID, e.Title, e.FlashcardsGenerated, lastSaved)
	}
	return tw.Flush()
}
