package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/persona/internal/config"
	"github.com/ziadkadry99/persona/internal/livereload"
	"github.com/ziadkadry99/persona/internal/metrics"
	"github.com/ziadkadry99/persona/internal/page"
	"github.com/ziadkadry99/persona/internal/prefs"
	"github.com/ziadkadry99/persona/internal/render"
	"github.com/ziadkadry99/persona/internal/site"
	"github.com/ziadkadry99/persona/internal/theme"
)

// ThemePath is the endpoint the theme toggle posts to.
const ThemePath = "/_persona/theme"

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	Site     *config.Config
	// RequestTimeout bounds page and API handlers. Zero means
	// DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// DefaultRequestTimeout is used when Config.RequestTimeout is zero.
const DefaultRequestTimeout = 60 * time.Second

// Server renders pages per request: each GET runs the full load sequence
// for its page, the way a browser page load would.
type Server struct {
	cfg        Config
	variant    theme.Variant
	source     page.Source
	prefs      prefs.Backend
	metrics    *metrics.Metrics
	hub        *livereload.Hub
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. hub may be nil to disable live reload.
func New(cfg Config, source page.Source, backend prefs.Backend, m *metrics.Metrics, hub *livereload.Hub) (*Server, error) {
	variant, err := theme.ParseVariant(cfg.Site.Theme.Variant)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = metrics.New()
	}
	s := &Server{
		cfg:     cfg,
		variant: variant,
		source:  source,
		prefs:   backend,
		metrics: m,
		hub:     hub,
	}

	router, err := s.buildRouter()
	if err != nil {
		return nil, err
	}
	s.router = router
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() (chi.Router, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The live reload socket stays open for the whole editing session.
	if s.hub != nil {
		r.Handle(livereload.Path, s.hub)
	}

	timeout := s.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	pages := s.cfg.Site.EffectivePages()
	archetypes := make([]page.Archetype, len(pages))
	for i, p := range pages {
		archetype, err := page.ParseArchetype(p.Archetype)
		if err != nil {
			return nil, err
		}
		archetypes[i] = archetype
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))

		// Health check
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

		r.Get("/"+render.StylesheetName, asset("text/css; charset=utf-8", render.Stylesheet))
		r.Get("/"+render.ScriptName, asset("text/javascript; charset=utf-8", render.Script))
		r.Post(ThemePath, s.handleTheme)

		for i, p := range pages {
			h := s.handlePage(p, archetypes[i])
			mount := "/" + strings.Trim(p.Path, "/")
			if mount == "/" {
				r.Get("/", h)
				r.Get("/index.html", h)
				continue
			}
			r.Get(mount, http.RedirectHandler(mount+"/", http.StatusMovedPermanently).ServeHTTP)
			r.Get(mount+"/", h)
			r.Get(mount+"/index.html", h)
		}
	})

	// Everything else comes from a local site root: images, downloads and
	// the data documents themselves.
	if root := s.cfg.Site.SiteRoot; !strings.HasPrefix(root, "http://") && !strings.HasPrefix(root, "https://") {
		r.NotFound(middleware.Timeout(timeout)(site.FileHandler(root)).ServeHTTP)
	}

	return r, nil
}

func asset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.Write([]byte(body))
	}
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Metrics returns the server's collectors.
func (s *Server) Metrics() *metrics.Metrics { return s.metrics }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("persona server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
