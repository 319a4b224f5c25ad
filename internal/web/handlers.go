package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"addrgen/internal/config"
	"addrgen/internal/generator"
	"addrgen/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	sessionName       = "addrgen-session"
	sessionCountryKey = "country"
)

type WebHandler struct {
	generator    *generator.GeneratorService
	templates    *template.Template
	sessionStore *sessions.CookieStore
	config       *config.Config
	logger       *slog.Logger
}

type PageData struct {
	Record   *models.GeneratedRecord
	Options  []models.CountryOption
	Selected models.Country
}

func NewWebHandler(gen *generator.GeneratorService, cfg *config.Config, logger *slog.Logger) (*WebHandler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With("component", "web")
	if cfg.SessionSecretGenerated {
		logger.Warn("SESSION_SECRET is not set, using a random key; sessions will not survive a restart")
	}

	store := sessions.NewCookieStore(cfg.SessionSecret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &WebHandler{
		generator:    gen,
		templates:    templates,
		sessionStore: store,
		config:       cfg,
		logger:       logger,
	}, nil
}

// Index renders a freshly generated record. Without a country parameter it
// reuses the country remembered in the session, or picks one at random.
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessionStore.Get(r, sessionName)

	raw := r.URL.Query().Get("country")
	if raw == "" {
		if last, ok := session.Values[sessionCountryKey].(string); ok {
			raw = last
		}
	}

	c, err := h.generator.ResolveCountry(raw)
	if err != nil {
		generator.WriteError(w, err)
		return
	}

	rec, err := h.generator.Generate(r.Context(), c)
	if err != nil {
		generator.WriteError(w, err)
		return
	}

	session.Values[sessionCountryKey] = string(c)
	if err := session.Save(r, w); err != nil {
		h.logger.Warn("failed to save session", "err", err)
	}

	data := PageData{
		Record:   rec,
		Options:  h.generator.Countries(),
		Selected: c,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *WebHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (h *WebHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "not found", http.StatusNotFound)
}
