// Package assets renders exported documents from templates embedded in the binary.
// A template path from the config takes precedence when it exists and parses.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/at-ishikawa/flashnote/internal/logger"
)

var funcMap = template.FuncMap{
	"join":  strings.Join,
	"quote": quote,
	"cell":  cell,
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string, log logger.Logger) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			log.Warn("failed to parse template, using the embedded one",
				logger.String("template_path", templatePath),
				logger.Error(err))
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse embedded template %s: %w", fallbackName, err)
	}
	return tmpl, nil
}

// quote renders text as a markdown block quote.
func quote(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("> "+l, " ")
	}
	return strings.Join(lines, "\n")
}

// cell makes text safe for a single markdown table cell.
func cell(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "|", `\|`)
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")
}
