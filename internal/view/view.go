package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"regexp"

	"github.com/VxVxN/trendingcompanies/internal/directory"
	"github.com/VxVxN/trendingcompanies/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type Page struct {
	State directory.State
}

// CardData is what a single company card template receives.
type CardData struct {
	Company  models.Company
	Position int
	Total    int
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("view").Funcs(funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderPage executes into a buffer first so a template error never leaves a
// half-written page behind.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	_, err := buf.WriteTo(w)
	return err
}

var (
	hexColor      = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	functionColor = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\(\s*[0-9.]+(?:deg|%)?\s*(?:,\s*[0-9.]+%?\s*){2}(?:,\s*[0-9.]+%?\s*)?\)$`)
	namedColor    = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

// brandColor passes through hex, rgb(a)/hsl(a) and named colors as trusted
// CSS. Anything else renders as an empty value.
func brandColor(color string) template.CSS {
	switch {
	case hexColor.MatchString(color), functionColor.MatchString(color), namedColor.MatchString(color):
		return template.CSS(color)
	default:
		return ""
	}
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"brandColor": brandColor,
		"card": func(company models.Company, index, total int) CardData {
			return CardData{Company: company, Position: index + 1, Total: total}
		},
	}
}
