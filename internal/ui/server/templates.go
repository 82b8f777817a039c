package server

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// loadTemplates parses every page together with the shared base layout. It
// returns a map keyed by page name.
func loadTemplates() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"join":     strings.Join,
		"truncate": truncate,
	}

	templates := make(map[string]*template.Template)
	for _, page := range []string{"home", "contact", "admin"} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/base.tmpl", "templates/"+page+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", page, err)
		}
		templates[page] = tmpl
	}
	return templates, nil
}

// truncate shortens s to at most n runes, adding an ellipsis when cut.
func truncate(n int, s string) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
