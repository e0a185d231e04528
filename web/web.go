// Package web embeds the static pages and the server-rendered views.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

//go:embed static
var static embed.FS

//go:embed templates/*.html
var templates embed.FS

// Page names accepted by Views.Render.
const (
	PageUser         = "userPage"
	PageUserText     = "userTextPage"
	PageUploadPrompt = "uploadPrompt"
	PageFAQ          = "faq"
	PageAbout        = "about"
	PageContact      = "contact"
)

var pages = []string{PageUser, PageUserText, PageUploadPrompt, PageFAQ, PageAbout, PageContact}

// Static returns the tree of static pages rooted at its top directory.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Views renders the server-side pages, each wrapped in the shared layout.
type Views struct {
	pages map[string]*template.Template
}

func NewViews() (*Views, error) {
	v := &Views{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tmpl, err := template.ParseFS(templates, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse view %s: %w", name, err)
		}
		v.pages[name] = tmpl
	}
	return v, nil
}

func (v *Views) Render(w io.Writer, name string, data any) error {
	tmpl, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("failed to render view %s: %w", name, err)
	}
	return nil
}
