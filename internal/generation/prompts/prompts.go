package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var files embed.FS

//go:embed templates/system.txt
var System string

const (
	Analysis      = "analysis.tmpl"
	Roadmap       = "roadmap.tmpl"
	Extension     = "extension.tmpl"
	ResumeBullets = "resume_bullets.tmpl"
	Encouragement = "encouragement.tmpl"
	LinkedIn      = "linkedin.tmpl"
)

var funcs = template.FuncMap{
	"join": func(xs []string) string {
		return strings.Join(xs, ", ")
	},
	"default": func(s, def string) string {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return s
	},
	"gpa": func(v *float64) string {
		if v == nil {
			return "Not specified"
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	},
}

// Templates are parsed once at package init.
var templates = template.Must(template.New("prompts").Funcs(funcs).Option("missingkey=error").ParseFS(files, "templates/*.tmpl"))

// Render executes the named prompt template with data.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
