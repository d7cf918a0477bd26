// Package web holds the HTML pages rendered by the handlers.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/jwalitptl/ehospital/internal/model"
)

//go:embed templates
var files embed.FS

// Templates parses every page. Pages are addressed by their path below
// templates/, e.g. "admin/docs.html".
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(Funcs()).ParseFS(files,
		"templates/*.html",
		"templates/admin/*.html",
		"templates/doctor/*.html",
		"templates/patient/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return t, nil
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(model.DateLayout)
		},
		"dob": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format(model.DateLayout)
		},
		"money": func(f float64) string {
			return fmt.Sprintf("%.2f", f)
		},
		"capitalize": func(s any) string {
			v := fmt.Sprint(s)
			if v == "" {
				return v
			}
			return strings.ToUpper(v[:1]) + v[1:]
		},
	}
}
