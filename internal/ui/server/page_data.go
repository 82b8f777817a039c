package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/admin"
	"github.com/williambechay/portfolio/internal/ui/model"
)

type navAction struct {
	Label string
	Href  string
}

type basePageData struct {
	Lang            string
	PageTitle       string
	MetaDescription string
	StylesheetPath  string
	CanonicalURL    string
	CurrentYear     int
	Nav             []navAction
	Toast           *model.Toast
	Robots          string

	tr locale.Translator
}

// T looks up a translation by dotted path. Missing keys render empty.
func (b basePageData) T(key string) string {
	if b.tr == nil {
		return ""
	}
	return b.tr.Lookup(locale.Key(key), "")
}

type homePageData struct {
	basePageData
	Projects []model.Project
	Skills   []model.SkillGroup
	Social   []model.SocialLink
}

type contactPageData struct {
	basePageData
	FormToken string
	Form      model.ContactFormState
	Reasons   []model.ReasonOption
	Social    []model.SocialLink
}

type adminPageData struct {
	basePageData
	FormToken     string
	Authenticated bool
	Rows          []admin.Row
	FetchFailed   bool
}

func (s *server) basePage(r *http.Request, store *locale.Store, titleKey, descKey locale.Key) basePageData {
	return basePageData{
		Lang:            store.Language().String(),
		PageTitle:       store.Lookup(titleKey, "William Béchay"),
		MetaDescription: store.Lookup(descKey, ""),
		StylesheetPath:  s.stylesPath,
		CanonicalURL:    absoluteURL(r, r.URL.Path),
		CurrentYear:     s.currentYear,
		Nav: []navAction{
			{Label: store.Lookup(locale.KeyHeaderProjects, "Projects"), Href: "/#projects"},
			{Label: store.Lookup(locale.KeyHeaderSkills, "Skills"), Href: "/#skills"},
			{Label: store.Lookup(locale.KeyHeaderContact, "Contact"), Href: "/contact"},
		},
		tr: store,
	}
}

// absoluteURL builds an absolute URL for path using the request host.
func absoluteURL(r *http.Request, path string) string {
	clean := strings.TrimSpace(path)
	if !strings.HasPrefix(clean, "/") {
		clean = "/" + clean
	}
	scheme := "https"
	if proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto != "" {
		scheme = proto
	} else if r.TLS == nil {
		scheme = "http"
	}
	host := strings.TrimSpace(r.Host)
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s://%s%s", scheme, host, clean)
}
