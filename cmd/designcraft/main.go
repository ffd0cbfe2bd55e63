package main

import (
	"embed"
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lutherj1178-hash/printscreations-designer/internal/cart"
	"github.com/lutherj1178-hash/printscreations-designer/internal/config"
	"github.com/lutherj1178-hash/printscreations-designer/internal/content"
	"github.com/lutherj1178-hash/printscreations-designer/internal/delivery"
	mw "github.com/lutherj1178-hash/printscreations-designer/internal/middleware"
	"github.com/lutherj1178-hash/printscreations-designer/internal/observability"
	"github.com/lutherj1178-hash/printscreations-designer/internal/product"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed content/*.md
var contentFS embed.FS

var (
	// devMode reparses templates on each request
	devMode   bool
	tmplCache *template.Template

	appLogger     *zap.Logger
	cartBuilder   *cart.Builder
	contentSource *content.Source
	closeDelay    = delivery.DefaultCloseDelay
	storeOrigin   = product.DefaultOrigin
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var addr string
	flag.StringVar(&addr, "addr", cfg.Addr, "HTTP listen address")
	flag.Parse()

	logger, err := observability.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	appLogger = logger
	devMode = cfg.Dev
	closeDelay = time.Duration(cfg.CloseDelayMs) * time.Millisecond
	storeOrigin = cfg.StoreURL
	cartBuilder = cart.NewBuilder(cart.BuilderDeps{})
	contentSource = content.NewSource(mustSub(contentFS, "content"))

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	r := newRouter()

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("designcraft listening",
		zap.String("addr", addr),
		zap.Bool("dev", devMode),
		zap.String("store_origin", storeOrigin),
		zap.Duration("close_delay", closeDelay))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For set by the load balancer; ensure only
	// trusted proxies can reach the service in production.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.CSRF)
	r.Use(mw.RequestLogger(appLogger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", WidgetHandler)
	r.Get("/widget/preview", WidgetPreviewFrag)
	r.Post("/widget/submit", WidgetSubmitHandler)
	r.Post("/widget/cancel", WidgetCancelHandler)
	r.Get("/widget/info", WidgetInfoHandler)

	return r
}

func parseTemplates() (*template.Template, error) {
	t, err := template.New("_root").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	return t, nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// renderPage executes the base layout. In dev mode, templates are reparsed
// on each request.
func renderPage(w http.ResponseWriter, r *http.Request, data any) {
	executeTemplate(w, "base", data)
}

// renderTemplate executes a named fragment template.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	executeTemplate(w, name, data)
}

func executeTemplate(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t := tmplCache
	if devMode || t == nil {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
}
