package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/view"
)

// SiteTitle is the document title shared by every page.
const SiteTitle = "ศูนย์ข้อมูลลงทุนหุ้นสหรัฐ | Thai U.S. Investment Portal"

// Page is the data handed to every page template.
type Page struct {
	Title   string
	Active  string
	Query   string
	DevMode bool
	Data    any
}

// Pages renders HTML pages from the templates in the pages directory.
type Pages struct {
	logger  *common.Logger
	devMode bool
	dir     string

	mu        sync.RWMutex
	templates *template.Template
}

// NewPages parses the page templates. In dev mode templates are re-parsed on
// every render.
func NewPages(logger *common.Logger, devMode bool) *Pages {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	dir := FindPagesDir()
	return &Pages{
		logger:    logger,
		devMode:   devMode,
		dir:       dir,
		templates: template.Must(parseTemplates(dir)),
	}
}

func parseTemplates(dir string) (*template.Template, error) {
	t, err := template.New("pages").Funcs(view.FuncMap()).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return t.ParseGlob(filepath.Join(dir, "partials", "*.html"))
}

// FindPagesDir locates the pages directory.
func FindPagesDir() string {
	dirs := []string{
		"./pages",
		"../pages",
		"../../pages",
		".",
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

func (p *Pages) lookup() *template.Template {
	if p.devMode {
		t, err := parseTemplates(p.dir)
		if err == nil {
			p.mu.Lock()
			p.templates = t
			p.mu.Unlock()
			return t
		}
		p.logger.Warn().Err(err).Msg("template reload failed, keeping previous set")
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.templates
}

// Render executes name into a buffer and writes it with status. A template
// error produces a plain 500 and nothing of the page.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	if page.Title == "" {
		page.Title = SiteTitle
	}
	page.DevMode = p.devMode

	var buf bytes.Buffer
	if err := p.lookup().ExecuteTemplate(&buf, name, page); err != nil {
		p.logger.Error().Str("template", name).Str("path", r.URL.Path).Err(err).Msg("failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		w.Write(buf.Bytes())
	}
}

// failure is the data of the not-found and unavailable pages.
type failure struct {
	Symbol string
	Kind   string
}

// NotFound renders the not-found page.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.Render(w, r, http.StatusNotFound, "not_found.html", Page{Data: failure{}})
}

// Failure renders the page for an error on a page's primary entity: 404 when
// the backend has no such symbol, 502 for anything else.
func (p *Pages) Failure(w http.ResponseWriter, r *http.Request, kind, symbol string, err error) {
	if errors.Is(err, client.ErrNotFound) {
		p.Render(w, r, http.StatusNotFound, "not_found.html", Page{
			Title: symbol + " | " + SiteTitle,
			Data:  failure{Symbol: symbol, Kind: kind},
		})
		return
	}

	// The backend error names internal paths and hosts; it stays in the log.
	p.logger.Warn().Str("kind", kind).Str("symbol", symbol).Err(err).Msg("primary query failed")
	p.Render(w, r, http.StatusBadGateway, "unavailable.html", Page{
		Data: failure{Symbol: symbol, Kind: kind},
	})
}

// StaticFileHandler serves static files (CSS, JS, images).
func (p *Pages) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	staticDir := filepath.Join(p.dir, "static")

	path := strings.TrimPrefix(r.URL.Path, "/static/")
	fullPath := filepath.Join(staticDir, path)

	// Security: prevent directory traversal
	absStaticDir, _ := filepath.Abs(staticDir)
	absFullPath, _ := filepath.Abs(fullPath)
	if !strings.HasPrefix(absFullPath, absStaticDir+string(filepath.Separator)) {
		http.NotFound(w, r)
		return
	}
	if info, err := os.Stat(absFullPath); err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, absFullPath)
}
