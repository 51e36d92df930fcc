package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/flashnote/internal/saving"
)

type HistoryFormat string

const (
	HistoryFormatTable HistoryFormat = "table"
	HistoryFormatYAML  HistoryFormat = "yaml"

	deltaPreviewLength = 60
)

// Set implements pflag.Value.
func (f *HistoryFormat) Set(v string) error {
	switch HistoryFormat(v) {
	case HistoryFormatTable, HistoryFormatYAML:
		*f = HistoryFormat(v)
		return nil
	}
	return fmt.Errorf("invalid value %q, valid values are %q or %q", v, HistoryFormatTable, HistoryFormatYAML)
}

// String implements pflag.Value.
func (f *HistoryFormat) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *HistoryFormat) Type() string {
	return "HistoryFormat"
}

// WriteHistory writes the save history of a notebook in the given format.
func WriteHistory(w io.Writer, entries []saving.SaveEntry, format HistoryFormat) error {
	if format == HistoryFormatYAML {
		return writeYAML(w, "history", entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No saves yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSAVED AT\tFLASHCARDS\tREGENERATE\tNEW CONTENT")
	for _, e := range entries {
		regenerate := "no"
		if e.CanRegenerate {
			regenerate = "yes"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			e.ID,
			e.SavedAt.Format("2006-01-02 15:04"),
			e.FlashcardsGenerated,
			regenerate,
			summarize(e.Delta),
		)
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, name string, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return encoder.Close()
}

func summarize(delta string) string {
	s := strings.Join(strings.Fields(delta), " ")
	if utf8.RuneCountInString(s) <= deltaPreviewLength {
		return s
	}
	return string([]rune(s)[:deltaPreviewLength-1]) + "…"
}
