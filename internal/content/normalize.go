// Package content turns rich notebook content into comparable plain text and decides
// which part of it is new and how many flashcards that part is worth.
package content

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	// three or more newlines, allowing horizontal whitespace between them
	blankLinesPattern = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

	closingBreaks = map[string]string{
		"p":          "\n\n",
		"div":        "\n\n",
		"blockquote": "\n\n",
		"pre":        "\n\n",
		"h1":         "\n\n",
		"h2":         "\n\n",
		"h3":         "\n\n",
		"h4":         "\n\n",
		"h5":         "\n\n",
		"h6":         "\n\n",
		"li":         "\n",
		"tr":         "\n",
	}

	skippedElements = map[string]bool{
		"script": true,
		"style":  true,
	}
)

// Normalize converts rich content into plain text.
// Line-breaking elements become newlines, every other tag is dropped and entities are decoded.
// The conversion is lossy; there is no way back to the rich form.
func Normalize(rich string) string {
	if rich == "" {
		return ""
	}

	var b strings.Builder
	skipDepth := 0
	z := html.NewTokenizer(strings.NewReader(rich))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return collapseBlankLines(b.String())
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "br":
				b.WriteByte('\n')
			case skippedElements[tag] && tt == html.StartTagToken:
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skippedElements[tag] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			b.WriteString(closingBreaks[tag])
		}
	}
}

func collapseBlankLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = blankLinesPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
