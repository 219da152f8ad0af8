// Package prefs persists the theme preference on the server side, either in
// a cookie or in the SQLite preferences table keyed by a visitor cookie.
package prefs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/persona/internal/db"
	"github.com/ziadkadry99/persona/internal/theme"
)

// VisitorCookie holds the id that keys database-backed preferences.
const VisitorCookie = "persona_visitor"

const cookieMaxAge = 365 * 24 * time.Hour

// Backend hands out a preference store bound to one request.
type Backend interface {
	Store(w http.ResponseWriter, r *http.Request) theme.Store
}

// Cookies keeps the preference in a cookie named Key.
type Cookies struct {
	Key string
}

func (c Cookies) Store(w http.ResponseWriter, r *http.Request) theme.Store {
	return &CookieStore{Name: c.Key, Request: r, Writer: w}
}

// Database keeps the preference in the preferences table.
type Database struct {
	DB  *db.DB
	Key string
}

func (d Database) Store(w http.ResponseWriter, r *http.Request) theme.Store {
	return &SQLStore{DB: d.DB, Key: d.Key, Visitor: Visitor(w, r)}
}

// New returns the backend named by the config value.
func New(backend, key string, database *db.DB) (Backend, error) {
	switch backend {
	case "", "cookie":
		return Cookies{Key: key}, nil
	case "sqlite":
		if database == nil {
			return nil, fmt.Errorf("sqlite preference backend needs a database")
		}
		return Database{DB: database, Key: key}, nil
	}
	return nil, fmt.Errorf("unknown preference backend %q", backend)
}

// CookieStore reads the preference from the request and writes it to the
// response.
type CookieStore struct {
	Name    string
	Request *http.Request
	Writer  http.ResponseWriter

	set   string
	isSet bool
}

func (s *CookieStore) Get(_ context.Context) (string, bool, error) {
	if s.isSet {
		return s.set, true, nil
	}
	c, err := s.Request.Cookie(s.Name)
	if err != nil {
		return "", false, nil
	}
	return c.Value, true, nil
}

func (s *CookieStore) Set(_ context.Context, mode string) error {
	http.SetCookie(s.Writer, persistent(s.Name, mode))
	s.set, s.isSet = mode, true
	return nil
}

// SQLStore reads and writes one visitor's preference row.
type SQLStore struct {
	DB      *db.DB
	Key     string
	Visitor string
}

func (s *SQLStore) Get(ctx context.Context) (string, bool, error) {
	return s.DB.Preference(ctx, s.Visitor, s.Key)
}

func (s *SQLStore) Set(ctx context.Context, mode string) error {
	return s.DB.SetPreference(ctx, s.Visitor, s.Key, mode)
}

// Visitor returns the request's visitor id, issuing a new one when the
// cookie is missing or malformed.
func Visitor(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(VisitorCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, persistent(VisitorCookie, id))
	// Later reads within the same request see the new id.
	r.AddCookie(&http.Cookie{Name: VisitorCookie, Value: id})
	return id
}

func persistent(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
