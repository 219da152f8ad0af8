package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ziadkadry99/persona/internal/config"
	"github.com/ziadkadry99/persona/internal/livereload"
	"github.com/ziadkadry99/persona/internal/loader"
	"github.com/ziadkadry99/persona/internal/page"
	"github.com/ziadkadry99/persona/internal/theme"
)

// schemeHint is the client hint carrying the OS color-scheme preference.
const schemeHint = "Sec-CH-Prefers-Color-Scheme"

func prefersDark(r *http.Request) func() bool {
	return func() bool {
		return strings.Trim(r.Header.Get(schemeHint), `" `) == "dark"
	}
}

func (s *Server) controller(w http.ResponseWriter, r *http.Request) *theme.Controller {
	c := &theme.Controller{Variant: s.variant, PrefersDark: prefersDark(r)}
	if s.prefs != nil {
		c.Store = s.prefs.Store(w, r)
	}
	return c
}

func (s *Server) handlePage(pc config.PageConfig, archetype page.Archetype) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		w.Header().Set("Accept-CH", schemeHint)
		w.Header().Set("Vary", schemeHint)
		w.Header().Set("Cache-Control", "no-store")

		ctl := s.controller(w, r)
		applied, err := ctl.Initial(ctx)
		if err != nil {
			log.Printf("theme: %v", err)
		}
		chrome := page.Chrome(applied, s.variant, s.cfg.Site.StorageKey(), ctl.Stored(ctx), "/", ThemePath)
		if s.hub != nil {
			chrome.LiveReload = livereload.Path
		}

		opts := page.Options{
			Archetype:      archetype,
			SiteConfigPath: s.cfg.Site.SiteConfig,
			DataPath:       pc.Data,
			Source:         s.source,
			Chrome:         chrome,
		}
		q := r.URL.Query()
		res, err := page.Render(ctx, opts, q.Get("person"), q.Get("profile"))
		if err != nil {
			status := statusFor(err)
			log.Printf("page %s: %v", r.URL.Path, err)
			s.metrics.Failures.WithLabelValues(string(archetype), strconv.Itoa(status)).Inc()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			if err := page.WriteFailure(w, err, archetype, chrome); err != nil {
				log.Printf("page %s: writing failure view: %v", r.URL.Path, err)
			}
			return
		}

		var buf bytes.Buffer
		if err := res.Write(&buf); err != nil {
			log.Printf("page %s: %v", r.URL.Path, err)
			http.Error(w, "rendering failed", http.StatusInternalServerError)
			return
		}
		s.metrics.ObserveRender(string(archetype), time.Since(start), res.Unsupported)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

// statusFor maps a load failure to the HTTP status of the failure view.
func statusFor(err error) int {
	var se *loader.StatusError
	var de *loader.DecodeError
	switch {
	case errors.As(err, &se), errors.As(err, &de):
		return http.StatusBadGateway
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, page.ErrMissingDataFile), errors.Is(err, page.ErrNoSelection):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// themeResponse is the JSON body returned to the page script.
type themeResponse struct {
	Mode      string `json:"mode"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Label     string `json:"label"`
	AriaLabel string `json:"aria_label"`
}

// handleTheme advances the theme by one click. Script clients get JSON;
// plain form posts are redirected back to the page.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	// current is the mode the page shows after its script applied the OS
	// preference, which the server only knows when the client hint is sent.
	shown := theme.Mode(r.PostFormValue("current"))
	applied, err := s.controller(w, r).ToggleFrom(r.Context(), shown)
	if err != nil {
		log.Printf("theme: %v", err)
		http.Error(w, `{"error":"saving preference failed"}`, http.StatusInternalServerError)
		return
	}
	s.metrics.ThemeToggles.WithLabelValues(string(applied.Mode)).Inc()

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(themeResponse{
			Mode:      string(applied.Mode),
			Attribute: applied.Attribute,
			Value:     applied.Value,
			Label:     applied.Label,
			AriaLabel: applied.AriaLabel,
		})
		return
	}

	back := r.Referer()
	if back == "" {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
