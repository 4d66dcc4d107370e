package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"frontdesk-backend/templates"

	"github.com/rs/zerolog/log"
)

// Menu selections of the shell
const (
	MenuRegister = "register"
	MenuEdit     = "edit"
	MenuVisitors = "visitors"
)

// Page carries what every view shows around its flow.
type Page struct {
	Title   string
	Menu    string
	Success string
	Error   string
	Hint    string
}

// Views renders the embedded HTML templates.
type Views struct {
	templates *template.Template
}

func NewViews() *Views {
	// Parse all templates from embedded filesystem
	return &Views{templates: template.Must(template.ParseFS(templates.FS, "*.html"))}
}

// Render executes name into a buffer first so a template error never leaves
// a half-written page.
func (v *Views) Render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("[Pages] Render failed")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// PageHandler is the three-way menu shell. Each request shows exactly one flow.
type PageHandler struct {
	views        *Views
	registration *RegistrationHandler
	patients     *PatientHandler
	visitors     *VisitorHandler
}

func NewPageHandler(views *Views, registration *RegistrationHandler, patients *PatientHandler, visitors *VisitorHandler) *PageHandler {
	return &PageHandler{
		views:        views,
		registration: registration,
		patients:     patients,
		visitors:     visitors,
	}
}

// Home dispatches on ?menu=, defaulting to registration.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("menu") {
	case MenuEdit:
		h.patients.EditPage(w, r)
	case MenuVisitors:
		h.visitors.Page(w, r)
	default:
		h.registration.Page(w, r)
	}
}

// ConfigErrorHandler answers every request with the blocking configuration
// page while the service has no usable credentials.
type ConfigErrorHandler struct {
	views *Views
	err   error
}

func NewConfigErrorHandler(views *Views, err error) *ConfigErrorHandler {
	return &ConfigErrorHandler{views: views, err: err}
}

func (h *ConfigErrorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusServiceUnavailable, "config_error.html", Page{
		Title: "Configuration required",
		Error: h.err.Error(),
	})
}
