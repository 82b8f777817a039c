package server

import (
	"bytes"
	_ "embed"
	"net/http"
	"net/url"

	"github.com/williambechay/portfolio/internal/locale"
)

//go:embed assets/styles.css
var stylesCSS []byte

//go:embed assets/app.js
var appJS []byte

// localeFor builds the request's locale store from the visitor's preference
// and waits for its tree. On failure it answers 503 with an empty body and
// returns nil.
func (s *server) localeFor(w http.ResponseWriter, r *http.Request) *locale.Store {
	store := locale.New(locale.Options{
		Loader: s.loader,
		Prefs:  s.prefs(w, r),
		Logger: s.logger,
	})
	store.Initialize(r.Context())
	if err := store.Wait(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "translations unavailable", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return nil
	}
	return store
}

// render executes the named page into a buffer so a template failure never
// leaves a half-written response.
func (s *server) render(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	tmpl, ok := s.templates[name]
	if !ok {
		http.Error(w, name+" template missing", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		s.logger.ErrorContext(r.Context(), "render template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *server) handleToggleLanguage(w http.ResponseWriter, r *http.Request) {
	store := locale.New(locale.Options{
		Loader: s.loader,
		Prefs:  s.prefs(w, r),
		Logger: s.logger,
	})
	store.Initialize(r.Context())
	next := store.ToggleLanguage(r.Context())
	s.logger.DebugContext(r.Context(), "language toggled", "language", next.String())
	http.Redirect(w, r, backPath(r), http.StatusSeeOther)
}

// backPath returns the Referer path when it points at this host, else "/".
func backPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host == "" || ref.Host != r.Host || ref.Path == "" || ref.Path[0] != '/' {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func (s *server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(stylesCSS)
}

func (s *server) handleScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(appJS)
}
