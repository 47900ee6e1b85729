package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names, one per screen.
const (
	PageLanding        = "landing"
	PageDoctors        = "doctors"
	PageAppointment    = "appointment"
	PagePatientDetails = "patient_details"
)

var pages = []string{PageLanding, PageDoctors, PageAppointment, PagePatientDetails}

var funcs = template.FuncMap{
	"dict": dict,
}

// Renderer holds one parsed template set per page. Every set shares the
// layout and partials and defines its own "content" block.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse layout: %w", err)
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("web: clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Page renders a full document into w.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.execute(w, data.Page, "layout", data)
}

// Fragment renders a single named block of a page, such as the doctor
// results list pushed over the live search socket.
func (r *Renderer) Fragment(w io.Writer, page, block string, data PageData) error {
	return r.execute(w, page, block, data)
}

func (r *Renderer) execute(w io.Writer, page, block string, data PageData) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("web: unknown page %q", page)
	}
	if err := t.ExecuteTemplate(w, block, data); err != nil {
		return fmt.Errorf("web: render %s/%s: %w", page, block, err)
	}
	return nil
}

// Static serves the embedded stylesheet and scripts.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// render buffers the page so a template failure never leaves a half-written
// response behind.
func (h *Handler) render(w http.ResponseWriter, status int, data PageData) {
	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, data); err != nil {
		h.logger.Error("failed to render page", "page", data.Page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
