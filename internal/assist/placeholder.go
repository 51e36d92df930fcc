package assist

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

var ErrPlaceholderNotFound = errors.New("placeholder not found")

// Handle identifies one inserted placeholder.
type Handle string

const placeholderText = "Generating…"

func (h Handle) marker() string {
	return fmt.Sprintf(`<span data-assist-placeholder="%s">%s</span>`, string(h), placeholderText)
}

// InsertPlaceholder inserts a loading placeholder at the byte offset of content.
// offset must fall on a rune boundary.
func InsertPlaceholder(content string, offset int) (string, Handle, error) {
	if offset < 0 || offset > len(content) {
		return content, "", fmt.Errorf("offset %d is out of range [0, %d]", offset, len(content))
	}
	if offset < len(content) && !utf8.RuneStart(content[offset]) {
		return content, "", fmt.Errorf("offset %d splits a character", offset)
	}

	h := Handle(uuid.NewString())
	return content[:offset] + h.marker() + content[offset:], h, nil
}

// ReplacePlaceholder swaps the placeholder for text. text is escaped and each paragraph is wrapped in <p>.
func ReplacePlaceholder(content string, h Handle, text string) (string, error) {
	return replaceMarker(content, h, renderParagraphs(text))
}

// RemovePlaceholder deletes the placeholder and leaves the rest of content as it was.
func RemovePlaceholder(content string, h Handle) (string, error) {
	return replaceMarker(content, h, "")
}

func replaceMarker(content string, h Handle, with string) (string, error) {
	if h == "" {
		return content, ErrPlaceholderNotFound
	}
	marker := h.marker()
	i := strings.Index(content, marker)
	if i < 0 {
		return content, fmt.Errorf("placeholder %s: %w", h, ErrPlaceholderNotFound)
	}
	return content[:i] + with + content[i+len(marker):], nil
}

func renderParagraphs(text string) string {
	var b strings.Builder
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(p), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}
