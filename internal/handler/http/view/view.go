// Package view renders the portal's server-side HTML. Every page is the
// shared layout around one page template; the layout carries the viewer,
// the one-shot flash notice, the category bar and, on dashboards, the
// role's sidebar.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"newspress/internal/config"
	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/auth"
	"newspress/internal/handler/http/requestid"
	"newspress/internal/infra/flash"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static serves the embedded stylesheet and images under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

// Page is the data every template receives.
type Page struct {
	Title string
	// Viewer is the signed-in user, nil for anonymous visitors.
	Viewer *entity.User
	Flash  *flash.Notice
	// Sidebar is the dashboard navigation of the mounted subtree.
	Sidebar []config.NavGroup
	// Categories feeds the top category bar.
	Categories []entity.Category
	Path       string
	Data       any
}

// Renderer executes the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
	flash *flash.Store
	nav   config.Navigation
}

// New parses every page under templates/pages together with the layout and
// partials. Page names are their path below pages/ without the extension,
// e.g. "home" or "admin/news".
func New(store *flash.Store, nav config.Navigation) (*Renderer, error) {
	shared := []string{"templates/layout.html", "templates/partials/*.html"}
	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	nested, err := fs.Glob(templateFS, "templates/pages/*/*.html")
	if err != nil {
		return nil, err
	}

	v := &Renderer{pages: make(map[string]*template.Template), flash: store, nav: nav}
	for _, file := range append(files, nested...) {
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/pages/"), path.Ext(file))
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, append(shared, file)...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// Has reports whether a page template named name exists.
func (v *Renderer) Has(name string) bool {
	_, ok := v.pages[name]
	return ok
}

// Render writes page name with status. The viewer, flash notice and sidebar
// are filled in from the request. Nothing is written when the client has
// already gone away.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, p Page) {
	if r.Context().Err() != nil {
		return
	}
	t, ok := v.pages[name]
	if !ok {
		slog.Error("unknown page template", slog.String("page", name))
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}

	if p.Viewer == nil {
		p.Viewer = auth.ViewerFrom(r.Context())
	}
	if p.Flash == nil && v.flash != nil {
		p.Flash = v.flash.Pop(w, r)
	}
	if p.Sidebar == nil {
		p.Sidebar = v.sidebar(auth.SubtreeFrom(r.Context()))
	}
	p.Path = r.URL.Path

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		slog.Error("failed to render page",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.String("page", name),
			slog.Any("error", err))
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (v *Renderer) sidebar(s auth.Subtree) []config.NavGroup {
	switch s {
	case auth.SubtreeAdmin:
		return v.nav.For(entity.RoleAdmin)
	case auth.SubtreeMember:
		return v.nav.For(entity.RoleUser)
	default:
		return nil
	}
}
