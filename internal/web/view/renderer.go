// Package view renders the portal's HTML screens from embedded templates.
// Each page template fills the "content" block of the shared layout.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer implements echo.Renderer. Pages are parsed once at startup, each
// combined with the layout, so a broken template fails the boot instead of a
// request.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", file, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}

var funcMap = template.FuncMap{
	// fecha renders a timestamp the day/month-first way the screens show
	// dates. Zero times render empty.
	"fecha": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02/01/2006 15:04")
	},
	// truncate shortens long free-text fields for list views.
	"truncate": func(s string, n int) string {
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n]) + "…"
	},
}
